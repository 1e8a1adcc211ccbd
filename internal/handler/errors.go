package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thierryazur06/site-api/internal/middleware"
	apperrors "github.com/thierryazur06/site-api/internal/pkg/errors"
	"github.com/thierryazur06/site-api/internal/service"
)

func respondValidation(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "error_type": "validation_error"})
}

// respondError maps service errors to a status and a stable error_type.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "error_type": "invalid_credentials"})
	case errors.Is(err, service.ErrOldPasswordMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect", "error_type": "invalid_credentials"})
	case errors.Is(err, apperrors.ErrInvalidCode):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code", "error_type": "invalid_code"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
	case errors.Is(err, apperrors.ErrValidation):
		respondValidation(c, validationMessage(err))
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found", "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already exists", "error_type": "conflict"})
	case errors.Is(err, apperrors.ErrDelivery):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email", "error_type": "delivery_failed"})
	default:
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "error_type": "internal_server_error"})
	}
}

// respondGateError is respondError for the public confirmation-code gate,
// where a rejected code is a 400.
func respondGateError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrInvalidCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired confirmation code", "error_type": "invalid_code"})
		return
	}
	respondError(c, err)
}

func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), apperrors.ErrValidation.Error()+": ")
	if msg == "" || msg == apperrors.ErrValidation.Error() {
		return "Invalid request data"
	}
	return msg
}
