package bidding

import "sync"

// lotLocks hands out one mutex per lot ID. Entries are reference counted and
// dropped once no submission holds or waits on them.
type lotLocks struct {
	mu    sync.Mutex
	locks map[string]*lotLock
}

type lotLock struct {
	mu   sync.Mutex
	refs int
}

func newLotLocks() *lotLocks {
	return &lotLocks{locks: make(map[string]*lotLock)}
}

// Lock blocks until the caller holds the lock for lotID and returns its release func
func (l *lotLocks) Lock(lotID string) func() {
	l.mu.Lock()
	lk, ok := l.locks[lotID]
	if !ok {
		lk = &lotLock{}
		l.locks[lotID] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.mu.Lock()

	return func() {
		lk.mu.Unlock()

		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, lotID)
		}
		l.mu.Unlock()
	}
}

// size reports how many lots currently have a lock entry
func (l *lotLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
