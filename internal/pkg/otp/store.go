// Package otp holds short-lived one-time verification codes keyed by
// email address. The store is injected behind an interface so a
// multi-instance deployment can swap the in-memory implementation for a
// shared cache.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// Entry is a single stored verification code
type Entry struct {
	Code      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the entry is past its expiry at time now
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Store is a keyed code store with TTL semantics
type Store interface {
	// Put stores or overwrites the entry for key
	Put(key string, entry Entry)
	// Get returns the entry for key if present
	Get(key string) (Entry, bool)
	// Delete removes the entry for key. Deleting an absent key is a no-op.
	Delete(key string)
}

// MemoryStore is an in-process Store. A background sweep evicts expired
// entries on a fixed interval so the map stays bounded even when codes
// are never verified.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
	done    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates a MemoryStore and starts its sweeper.
// Call Close to stop the sweeper.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	if sweepInterval <= 0 {
		sweepInterval = 10 * time.Minute
	}
	s := &MemoryStore{
		entries: make(map[string]Entry),
		done:    make(chan struct{}),
	}
	go s.sweep(sweepInterval)
	return s
}

// Put stores or overwrites the entry for key
func (s *MemoryStore) Put(key string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
}

// Get returns the entry for key if present
func (s *MemoryStore) Get(key string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	return entry, ok
}

// Delete removes the entry for key. Absent keys are a no-op, so a
// verify racing the sweeper never errors.
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Close stops the background sweeper
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for key, entry := range s.entries {
				if entry.Expired(now) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// GenerateCode returns a random 6-digit verification code
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
