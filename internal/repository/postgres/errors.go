package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/thierryazur06/site-api/internal/pkg/errors"
)

// translate maps gorm errors onto application errors. The connection must
// be opened with TranslateError so duplicates arrive as gorm.ErrDuplicatedKey.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, op)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

// affected turns a zero-row write into apperrors.ErrNotFound.
func affected(result *gorm.DB, op string) error {
	if result.Error != nil {
		return translate(result.Error, op)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
