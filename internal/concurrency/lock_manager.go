package concurrency

import (
	"context"
	"sync"
)

type keyLock struct {
	ch   chan struct{}
	refs int
}

// LockManager hands out one lock per key. Entries are dropped once no caller
// holds or waits on them, so the map only grows with concurrent keys.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*keyLock)}
}

// Lock blocks until the lock for key is held or ctx is done.
// The returned func releases the lock and must be called exactly once.
func (lm *LockManager) Lock(ctx context.Context, key string) (func(), error) {
	lm.mu.Lock()
	l, ok := lm.locks[key]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		lm.locks[key] = l
	}
	l.refs++
	lm.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
		return func() { lm.release(key, l, true) }, nil
	case <-ctx.Done():
		lm.release(key, l, false)
		return nil, ctx.Err()
	}
}

// WithLock runs fn while holding the lock for key.
func (lm *LockManager) WithLock(ctx context.Context, key string, fn func() error) error {
	unlock, err := lm.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

// Len returns the number of keys currently tracked.
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}

func (lm *LockManager) release(key string, l *keyLock, held bool) {
	if held {
		<-l.ch
	}
	lm.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(lm.locks, key)
	}
	lm.mu.Unlock()
}
