// Package verification issues and checks short-lived six digit codes.
//
// A Service runs over a Store. There are two kinds of store: volatile ones
// keyed by email (MemoryStore, the Redis code store) for anonymous
// actions, and the durable verification_codes table keyed by user id for
// account actions. Every Store must make Consume an atomic
// compare-and-delete so a code is accepted at most once.
package verification

import (
	"context"
	"time"
)

// Store holds at most one effective code per key.
type Store[K comparable] interface {
	// Put records code for key until expiresAt, replacing any previous code.
	Put(ctx context.Context, key K, code string, expiresAt time.Time) error
	// Consume removes the code for key and returns true only if it equals
	// code and has not expired at now. A wrong code leaves the entry in place.
	Consume(ctx context.Context, key K, code string, now time.Time) (bool, error)
}

// Sweeper is implemented by stores that need expired entries purged.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int64, error)
}
