// Package concurrency provides keyed mutual exclusion for command handlers.
package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key. Keys are never evicted; the key
// space is bounded by channel x user pairs that ever issued a command.
type LockManager struct {
	locks    sync.Map
	channels sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Lock acquires the mutex for key and returns its unlock function.
func (lm *LockManager) Lock(key string) func() {
	mu := lm.GetLock(key)
	mu.Lock()
	return mu.Unlock
}

func (lm *LockManager) channelLock(channelID string) *sync.RWMutex {
	lock, _ := lm.channels.LoadOrStore(channelID, &sync.RWMutex{})
	return lock.(*sync.RWMutex)
}

// LockUser serializes one user's commands in a channel. Holders for the
// same channel share it against LockChannel. It must not be nested.
func (lm *LockManager) LockUser(channelID, userID string) func() {
	ch := lm.channelLock(channelID)
	ch.RLock()
	mu := lm.GetLock(UserKey(channelID, userID))
	mu.Lock()
	return func() {
		mu.Unlock()
		ch.RUnlock()
	}
}

// LockChannel waits for every LockUser holder of the channel to finish and
// keeps new ones out until unlocked. Used for writes that touch every
// profile of a channel.
func (lm *LockManager) LockChannel(channelID string) func() {
	ch := lm.channelLock(channelID)
	ch.Lock()
	return ch.Unlock
}

// UserKey builds the per channel, per user gate key.
func UserKey(channelID, userID string) string {
	return channelID + ":" + userID
}
