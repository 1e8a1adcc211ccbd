package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/thierryazur06/site-api/internal/domain/entity"
)

// VerificationCodeRepo is the durable one-time code store keyed by user id.
type VerificationCodeRepo struct {
	db *gorm.DB
}

// NewVerificationCodeRepo creates the durable code store.
func NewVerificationCodeRepo(db *gorm.DB) *VerificationCodeRepo {
	return &VerificationCodeRepo{db: db}
}

// Put invalidates the user's previous codes and stores the new one, so at
// most one row per user can ever match.
func (r *VerificationCodeRepo) Put(ctx context.Context, userID uint, code string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&entity.VerificationCode{}).Error; err != nil {
			return translate(err, "invalidate previous codes")
		}
		record := &entity.VerificationCode{
			UserID:    userID,
			Code:      code,
			ExpiresAt: expiresAt.UTC(),
		}
		return translate(tx.Create(record).Error, "create verification code")
	})
}

// Consume is a single conditional DELETE. Of concurrent callers presenting
// the same code, only the one whose statement removes the row succeeds.
// A wrong code leaves the row in place.
func (r *VerificationCodeRepo) Consume(ctx context.Context, userID uint, code string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND expires_at > ?", userID, code, now.UTC()).
		Delete(&entity.VerificationCode{})
	if result.Error != nil {
		return false, translate(result.Error, "consume verification code")
	}
	return result.RowsAffected > 0, nil
}

// Sweep deletes every expired row.
func (r *VerificationCodeRepo) Sweep(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&entity.VerificationCode{})
	if result.Error != nil {
		return 0, translate(result.Error, "sweep verification codes")
	}
	return result.RowsAffected, nil
}
