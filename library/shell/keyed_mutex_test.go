package shell_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aegislib/circulation/library/shell"
)

func Test_KeyedMutex_SerializesSameKey(t *testing.T) {
	// arrange
	km := shell.NewKeyedMutex()
	var inside atomic.Int32
	var maxInside atomic.Int32
	var wg sync.WaitGroup

	// act
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := km.Lock("ACC-10001")
			defer unlock()

			now := inside.Add(1)
			if now > maxInside.Load() {
				maxInside.Store(now)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()

	// assert
	assert.Equal(t, int32(1), maxInside.Load())
	assert.Equal(t, 0, km.Len())
}

func Test_KeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	// arrange
	km := shell.NewKeyedMutex()
	unlockFirst := km.Lock("ACC-1")
	done := make(chan struct{})

	// act
	go func() {
		unlock := km.Lock("ACC-2")
		unlock()
		close(done)
	}()

	// assert
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key was blocked")
	}

	assert.Equal(t, 1, km.Len())
	unlockFirst()
	assert.Equal(t, 0, km.Len())
}
