package service

import (
	"sync"

	"github.com/google/uuid"
)

// principalLocks hands out one mutex per principal. Entries are reference
// counted and removed once the last holder unlocks.
type principalLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*principalLock
}

type principalLock struct {
	sync.Mutex
	refs int
}

func newPrincipalLocks() *principalLocks {
	return &principalLocks{locks: make(map[uuid.UUID]*principalLock)}
}

// lock blocks until the caller owns principalID and returns the release func.
func (p *principalLocks) lock(principalID uuid.UUID) func() {
	p.mu.Lock()
	l, ok := p.locks[principalID]
	if !ok {
		l = &principalLock{}
		p.locks[principalID] = l
	}
	l.refs++
	p.mu.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		p.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(p.locks, principalID)
		}
		p.mu.Unlock()
	}
}

func (p *principalLocks) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}
