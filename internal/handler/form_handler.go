package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thierryazur06/site-api/internal/service"
)

// FormHandler serves the public forms guarded by an emailed confirmation code.
type FormHandler struct {
	inquiries *service.InquiryService
	reviews   *service.ReviewService
}

func NewFormHandler(inquiries *service.InquiryService, reviews *service.ReviewService) *FormHandler {
	return &FormHandler{inquiries: inquiries, reviews: reviews}
}

type SendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ContactRequest struct {
	Nom     string `json:"nom"`
	Prenom  string `json:"prenom"`
	Email   string `json:"email" binding:"required"`
	Objet   string `json:"objet"`
	Message string `json:"message"`
	Code    string `json:"code" binding:"required"`
}

type ReviewRequest struct {
	FullName string  `json:"fullName" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Type     string  `json:"type" binding:"required"`
	CityID   uint    `json:"cityId" binding:"required"`
	Message  string  `json:"message"`
	Note     float64 `json:"note" binding:"required"`
	Code     string  `json:"code" binding:"required"`
}

// SendCode mails a confirmation code to the visitor.
func (h *FormHandler) SendCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "A valid email is required")
		return
	}
	if err := h.inquiries.SendConfirmationCode(c.Request.Context(), req.Email); err != nil {
		respondGateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SubmitContact records the message and forwards it to the site owner.
func (h *FormHandler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Email and code are required")
		return
	}

	err := h.inquiries.SubmitContact(c.Request.Context(), service.ContactInput{
		Nom:     req.Nom,
		Prenom:  req.Prenom,
		Email:   req.Email,
		Objet:   req.Objet,
		Message: req.Message,
		Code:    req.Code,
	})
	if err != nil {
		respondGateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SubmitReview stores a review pending moderation.
func (h *FormHandler) SubmitReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Missing required fields")
		return
	}

	_, err := h.reviews.Submit(c.Request.Context(), service.ReviewInput{
		FullName: req.FullName,
		Email:    req.Email,
		Type:     req.Type,
		CityID:   req.CityID,
		Message:  req.Message,
		Note:     req.Note,
		Code:     req.Code,
	})
	if err != nil {
		respondGateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
