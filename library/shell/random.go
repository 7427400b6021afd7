package shell

import (
	"math/rand"
	"sync"
)

// LockedRand is a *rand.Rand that is safe for concurrent use. It satisfies core.RandomSource.
type LockedRand struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{rand: rand.New(rand.NewSource(seed))} //nolint:gosec // identifiers, not secrets
}

func (r *LockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rand.Intn(n)
}
