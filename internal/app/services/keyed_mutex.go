package services

import "sync"

// keyedMutex serializes work per key. Registration admission uses it so
// the capacity check and the row write for one event cannot interleave
// with another request racing the same slot.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*entryLock
}

type entryLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[int64]*entryLock)}
}

// Lock acquires the mutex for key, creating it on first use
func (k *keyedMutex) Lock(key int64) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entryLock{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key, dropping it once unused
func (k *keyedMutex) Unlock(key int64) {
	k.mu.Lock()
	e := k.locks[key]
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
