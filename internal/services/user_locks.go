package services

import "sync"

// userLocks serializes multi-step writes for a single user.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (locks *userLocks) lock(userID string) func() {
	locks.mu.Lock()
	userLock, ok := locks.locks[userID]
	if !ok {
		userLock = &sync.Mutex{}
		locks.locks[userID] = userLock
	}
	locks.mu.Unlock()

	userLock.Lock()
	return userLock.Unlock
}
