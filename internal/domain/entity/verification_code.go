package entity

import "time"

// VerificationCode is a persisted one-time code tied to an admin account.
// Rows are removed on first successful use or by the expiry sweeper.
type VerificationCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (VerificationCode) TableName() string {
	return "verification_codes"
}
