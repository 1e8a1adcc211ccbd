package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thierryazur06/site-api/internal/handler/dto"
	"github.com/thierryazur06/site-api/internal/service"
)

const resetRequestedMessage = "Si un compte existe pour cet email, un code de réinitialisation a été envoyé"

// AuthHandler serves the admin login and password reset endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type VerifyRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Code   string `json:"code" binding:"required"`
}

type RequestResetRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	UserID      uint   `json:"userId" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// Login checks the password and mails the second factor.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Email and password are required")
		return
	}

	userID, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent", "userId": userID})
}

// Verify exchanges a login code for a session token.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "userId and code are required")
		return
	}

	result, err := h.authService.VerifyLogin(c.Request.Context(), req.UserID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": result.Token, "user": dto.NewSessionUser(result.User)})
}

// RequestResetPassword answers the same way whether or not the email is known.
func (h *AuthHandler) RequestResetPassword(c *gin.Context) {
	var req RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Email is required")
		return
	}

	userID, found, err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"message": resetRequestedMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": resetRequestedMessage, "userId": userID})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "userId, code and newPassword are required")
		return
	}
	if len(req.NewPassword) < service.MinPasswordLength {
		respondError(c, service.ErrPasswordTooShort)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.UserID, req.Code, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}
