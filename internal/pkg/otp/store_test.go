package otp

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(time.Hour)
	defer s.Close()

	now := time.Now()
	s.Put("a@x.com", Entry{Code: "123456", CreatedAt: now, ExpiresAt: now.Add(10 * time.Minute)})

	entry, ok := s.Get("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "123456", entry.Code)

	s.Delete("a@x.com")
	_, ok = s.Get("a@x.com")
	assert.False(t, ok)

	// Deleting an absent key must be a no-op
	s.Delete("a@x.com")
}

func TestMemoryStore_OverwriteReplacesCode(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(time.Hour)
	defer s.Close()

	now := time.Now()
	s.Put("a@x.com", Entry{Code: "111111", CreatedAt: now, ExpiresAt: now.Add(time.Minute)})
	s.Put("a@x.com", Entry{Code: "222222", CreatedAt: now, ExpiresAt: now.Add(time.Minute)})

	entry, ok := s.Get("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "222222", entry.Code)
}

func TestMemoryStore_SweepEvictsExpired(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(10 * time.Millisecond)
	defer s.Close()

	now := time.Now()
	s.Put("expired@x.com", Entry{Code: "111111", CreatedAt: now.Add(-time.Hour), ExpiresAt: now.Add(-time.Minute)})
	s.Put("live@x.com", Entry{Code: "222222", CreatedAt: now, ExpiresAt: now.Add(time.Hour)})

	assert.Eventually(t, func() bool {
		_, ok := s.Get("expired@x.com")
		return !ok
	}, time.Second, 10*time.Millisecond, "sweeper should evict the expired entry")

	_, ok := s.Get("live@x.com")
	assert.True(t, ok, "sweeper must not evict live entries")
}

func TestMemoryStore_ConcurrentDeleteAndSweep(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(time.Millisecond)
	defer s.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			now := time.Now()
			for j := 0; j < 200; j++ {
				s.Put("a@x.com", Entry{Code: "123456", CreatedAt: now.Add(-time.Hour), ExpiresAt: now.Add(-time.Minute)})
				s.Get("a@x.com")
				s.Delete("a@x.com")
			}
		}()
	}
	wg.Wait()
}

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9')
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1, "codes should vary")
}
