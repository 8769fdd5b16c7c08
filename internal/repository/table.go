package repository

import (
	"cmp"
	"slices"
	"sync"
)

type entry[T any] struct {
	seq   uint64
	value T
}

// table is a concurrency-safe map of entity values keyed by ID.
// Values are copied on the way in and out so callers never share stored state.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[string]entry[T]
	seq  uint64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]entry[T])}
}

// put inserts or replaces the value. A replaced row keeps its original insertion position.
func (t *table[T]) put(id string, value T) T {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.rows[id]
	if !ok {
		t.seq++
		e.seq = t.seq
	}
	e.value = value
	t.rows[id] = e
	return value
}

// putAll writes every value under a single write lock, so readers see either
// none or all of them. idOf extracts each row key.
func (t *table[T]) putAll(idOf func(T) string, values ...T) []T {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, value := range values {
		id := idOf(value)
		e, ok := t.rows[id]
		if !ok {
			t.seq++
			e.seq = t.seq
		}
		e.value = value
		t.rows[id] = e
	}
	return slices.Clone(values)
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.rows[id]
	return e.value, ok
}

func (t *table[T]) has(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.rows)
}

// filter returns copies of matching values in insertion order. A nil keep matches everything.
func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	matched := make([]entry[T], 0, len(t.rows))
	for _, e := range t.rows {
		if keep == nil || keep(e.value) {
			matched = append(matched, e)
		}
	}
	t.mu.RUnlock()

	slices.SortFunc(matched, func(a, b entry[T]) int {
		return cmp.Compare(a.seq, b.seq)
	})

	out := make([]T, len(matched))
	for i, e := range matched {
		out[i] = e.value
	}
	return out
}

func pointers[T any](values []T) []*T {
	out := make([]*T, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}
