package shell

import (
	"sync"
)

// KeyedMutex serializes critical sections per key, e.g. per copy id.
// Entries are reference counted and removed when the last holder unlocks.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu      sync.Mutex
	holders int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock blocks until the lock for key is held and returns the function that releases it.
func (km *KeyedMutex) Lock(key string) (unlock func()) {
	km.mu.Lock()
	lock, ok := km.locks[key]
	if !ok {
		lock = &keyedLock{}
		km.locks[key] = lock
	}
	lock.holders++
	km.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		km.mu.Lock()
		lock.holders--
		if lock.holders == 0 {
			delete(km.locks, key)
		}
		km.mu.Unlock()
	}
}

// Len is the number of keys that are currently locked or waited for.
func (km *KeyedMutex) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()

	return len(km.locks)
}
