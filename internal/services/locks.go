package service

import (
	"sync"

	"github.com/google/uuid"
)

// userLocks serializes cart mutations per user ID so concurrent
// merge/replace/clear calls for one user never interleave their
// read-modify-write. Entries are reference counted and removed once the last
// holder releases, keeping the table bounded by in-flight requests.
type userLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uuid.UUID]*userLock)}
}

func (l *userLocks) lock(userID uuid.UUID) {
	l.mu.Lock()

	entry, ok := l.locks[userID]
	if !ok {
		entry = &userLock{}
		l.locks[userID] = entry
	}

	entry.refs++

	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *userLocks) unlock(userID uuid.UUID) {
	l.mu.Lock()

	entry := l.locks[userID]

	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, userID)
	}

	l.mu.Unlock()

	entry.mu.Unlock()
}
