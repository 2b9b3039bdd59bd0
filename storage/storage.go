// Package storage is a generic record store: one JSON file per record,
// grouped into named collections. It has no cross-key transactions; each
// operation touches exactly one record.
package storage

import (
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrExists   = errors.New("record already exists")
)

// KeyedMutex hands out one mutex per key so callers can serialize
// read-modify-write sequences on a single record without a global lock.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock locks the mutex for key and returns the matching unlock function.
func (m *KeyedMutex) Lock(key string) func() {
	m.mu.Lock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[key] = lock
	}
	m.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
