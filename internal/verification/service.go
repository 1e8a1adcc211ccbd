package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 10 * time.Minute

// Codes is what callers depend on: issue a code for a key, then verify it.
type Codes[K comparable] interface {
	Issue(ctx context.Context, key K) (string, error)
	Verify(ctx context.Context, key K, code string) (bool, error)
}

// Option configures a Service.
type Option func(*options)

type options struct {
	ttl      time.Duration
	now      func() time.Time
	generate func() (string, error)
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithClock sets the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithGenerator replaces the random code generator.
func WithGenerator(generate func() (string, error)) Option {
	return func(o *options) {
		if generate != nil {
			o.generate = generate
		}
	}
}

// Service issues and verifies codes over a Store.
type Service[K comparable] struct {
	store Store[K]
	opts  options
}

// NewService creates a Service over store.
func NewService[K comparable](store Store[K], opts ...Option) (*Service[K], error) {
	if store == nil {
		return nil, errors.New("verification store is required")
	}
	o := options{
		ttl:      DefaultTTL,
		now:      time.Now,
		generate: GenerateCode,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Service[K]{store: store, opts: o}, nil
}

// Issue generates a code for key, stores it for the TTL and returns it.
// Delivering the code is the caller's job.
func (s *Service[K]) Issue(ctx context.Context, key K) (string, error) {
	code, err := s.opts.generate()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	if err := s.store.Put(ctx, key, code, s.opts.now().Add(s.opts.ttl)); err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}
	return code, nil
}

// Verify consumes the code for key. It returns false, without saying
// why, when no code exists, the code is wrong or it has expired.
func (s *Service[K]) Verify(ctx context.Context, key K, code string) (bool, error) {
	if code == "" {
		return false, nil
	}
	ok, err := s.store.Consume(ctx, key, code, s.opts.now())
	if err != nil {
		return false, fmt.Errorf("failed to consume code: %w", err)
	}
	return ok, nil
}

// Sweep purges expired entries if the store supports it.
func (s *Service[K]) Sweep(ctx context.Context) (int64, error) {
	sw, ok := s.store.(Sweeper)
	if !ok {
		return 0, nil
	}
	return sw.Sweep(ctx, s.opts.now())
}

var codeSpan = big.NewInt(900000)

// GenerateCode returns a uniformly random code in 100000..999999.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
