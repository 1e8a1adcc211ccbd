package repository

import (
	"context"
	"time"
)

// VerificationCodeRepository is the durable code store keyed by user id.
type VerificationCodeRepository interface {
	// Put replaces every code of the user with a single new one.
	Put(ctx context.Context, userID uint, code string, expiresAt time.Time) error
	// Consume deletes the matching unexpired code and reports whether one existed.
	Consume(ctx context.Context, userID uint, code string, now time.Time) (bool, error)
	// Sweep deletes rows that expired before now.
	Sweep(ctx context.Context, now time.Time) (int64, error)
}
