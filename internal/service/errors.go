package service

import (
	"fmt"

	apperrors "github.com/thierryazur06/site-api/internal/pkg/errors"
)

// MinPasswordLength is the shortest password an admin may choose.
const MinPasswordLength = 8

// Flow specific errors. Each wraps an apperrors sentinel so handlers can
// map it to a status with errors.Is.
var (
	ErrInvalidCredentials  = fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	ErrOldPasswordMismatch = fmt.Errorf("%w: old password does not match", apperrors.ErrUnauthorized)
	ErrPasswordTooShort    = fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, MinPasswordLength)
	ErrOldPasswordRequired = fmt.Errorf("%w: old password is required", apperrors.ErrValidation)
	ErrCannotDeleteSelf    = fmt.Errorf("%w: cannot delete your own account", apperrors.ErrValidation)
	ErrAboutMissing        = fmt.Errorf("%w: about record must exist before adding values", apperrors.ErrValidation)
	ErrInvalidImage        = fmt.Errorf("%w: uploaded file is not an image", apperrors.ErrValidation)
	ErrInvalidReviewType   = fmt.Errorf("%w: invalid review type", apperrors.ErrValidation)
)

func required(field string) error {
	return fmt.Errorf("%w: %s is required", apperrors.ErrValidation, field)
}
