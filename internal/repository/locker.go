package repository

import (
	"slices"
	"sync"
)

// KeyLocker hands out one mutex per key. Keys are never evicted; entities are
// never physically deleted, so the set is bounded by the number of entities.
type KeyLocker struct {
	locks sync.Map
}

func NewKeyLocker() *KeyLocker {
	return &KeyLocker{}
}

func (l *KeyLocker) mutex(key string) *sync.Mutex {
	m, _ := l.locks.LoadOrStore(key, &sync.Mutex{})
	return m.(*sync.Mutex)
}

// Lock acquires the mutex of every distinct key in sorted order, so two callers
// locking the same pair in opposite argument order cannot deadlock.
// The returned func releases them in reverse order.
func (l *KeyLocker) Lock(keys ...string) (unlock func()) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, key := range sorted {
		m := l.mutex(key)
		m.Lock()
		held = append(held, m)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
