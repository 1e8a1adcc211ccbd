package verification

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"
)

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is a process-local Store. Codes are lost on restart and are
// not shared between instances; use the Redis store for that.
type MemoryStore[K comparable] struct {
	mu      sync.Mutex
	entries map[K]memoryEntry
}

func NewMemoryStore[K comparable]() *MemoryStore[K] {
	return &MemoryStore[K]{entries: make(map[K]memoryEntry)}
}

func (s *MemoryStore[K]) Put(_ context.Context, key K, code string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{code: code, expiresAt: expiresAt}
	return nil
}

func (s *MemoryStore[K]) Consume(_ context.Context, key K, code string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if !now.Before(entry.expiresAt) {
		delete(s.entries, key)
		return false, nil
	}
	if subtle.ConstantTimeCompare([]byte(entry.code), []byte(code)) != 1 {
		return false, nil
	}
	delete(s.entries, key)
	return true, nil
}

// Sweep drops every expired entry.
func (s *MemoryStore[K]) Sweep(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore[K]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
