package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thierryazur06/site-api/internal/handler/dto"
	"github.com/thierryazur06/site-api/internal/middleware"
	apperrors "github.com/thierryazur06/site-api/internal/pkg/errors"
	"github.com/thierryazur06/site-api/internal/service"
)

// AccountHandler serves the admin account endpoints.
type AccountHandler struct {
	accounts *service.AccountService
}

func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type PasswordChangeCodeRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

type ChangePasswordRequest struct {
	UserID      uint   `json:"userId" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
	OldPassword string `json:"oldPassword"`
	Code        string `json:"code" binding:"required"`
}

// Me returns the caller's profile.
func (h *AccountHandler) Me(c *gin.Context) {
	user, err := h.accounts.Me(c.GetUint(middleware.ContextUserIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfile(user))
}

func (h *AccountHandler) ListUsers(c *gin.Context) {
	users, err := h.accounts.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(users))
}

// CreateUser adds an admin and mails them a temporary password.
func (h *AccountHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Email, firstName and lastName are required")
		return
	}

	user, err := h.accounts.Create(c.Request.Context(), service.CreateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists", "error_type": "conflict"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin created successfully", "id": user.ID})
}

func (h *AccountHandler) DeleteUser(c *gin.Context) {
	callerID := c.GetUint(middleware.ContextUserIDKey)
	if err := h.accounts.Delete(callerID, c.GetUint("targetID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *AccountHandler) RequestPasswordChangeCode(c *gin.Context) {
	var req PasswordChangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "userId is required")
		return
	}
	if err := h.accounts.RequestPasswordChangeCode(c.Request.Context(), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Code de vérification envoyé par email"})
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "userId, newPassword and code are required")
		return
	}
	if len(req.NewPassword) < service.MinPasswordLength {
		respondError(c, service.ErrPasswordTooShort)
		return
	}

	err := h.accounts.ChangePassword(c.Request.Context(), service.ChangePasswordInput{
		UserID:      req.UserID,
		NewPassword: req.NewPassword,
		OldPassword: req.OldPassword,
		Code:        req.Code,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
