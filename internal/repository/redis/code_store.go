package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// consumeScript deletes KEYS[1] only when it holds ARGV[1]. GET and DEL run
// as one script, so two callers can never both see the code.
var consumeScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if v and v == ARGV[1] then
	redis.call('DEL', KEYS[1])
	return 1
end
return 0
`)

// FormCodePrefix namespaces the public form codes keyed by email.
const FormCodePrefix = "codes:form:"

// CodeStore is a volatile verification code store shared by every API
// instance. Expiry is delegated to Redis key TTLs.
type CodeStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewCodeStore creates a store whose keys are prefix + the caller's key.
func NewCodeStore(client redis.UniversalClient, prefix string) (*CodeStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil for CodeStore")
	}
	if prefix == "" {
		prefix = "vcode:"
	}
	return &CodeStore{client: client, prefix: prefix, now: time.Now}, nil
}

// SetClock replaces the time source that turns deadlines into key TTLs.
// It should match the clock of the verification service in front.
func (s *CodeStore) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *CodeStore) key(k string) string {
	return s.prefix + k
}

// Put stores code with a TTL ending at expiresAt. An already expired
// deadline only clears the key.
func (s *CodeStore) Put(ctx context.Context, key string, code string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.client.Del(ctx, s.key(key)).Err()
	}
	if err := s.client.Set(ctx, s.key(key), code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}
	return nil
}

// Consume runs the compare-and-delete script. now is unused because
// Redis has already dropped expired keys.
func (s *CodeStore) Consume(ctx context.Context, key string, code string, _ time.Time) (bool, error) {
	n, err := consumeScript.Run(ctx, s.client, []string{s.key(key)}, code).Int()
	if err != nil {
		return false, fmt.Errorf("failed to consume code: %w", err)
	}
	return n == 1, nil
}
