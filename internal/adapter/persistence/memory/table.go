// Package memory is an in-process document store. Updates are
// compare-and-swap on the version counter, mirroring the conditional writes of
// the DynamoDB repositories.
package memory

import (
	"fmt"
	"sync"

	"fieldservice_billing/internal/domain/shared"
)

type table[T any] struct {
	name    string
	mu      sync.RWMutex
	rows    map[string]T
	clone   func(T) T
	version func(T) int
	setVer  func(*T, int)
}

func newTable[T any](name string, clone func(T) T, version func(T) int, setVer func(*T, int)) *table[T] {
	return &table[T]{name: name, rows: make(map[string]T), clone: clone, version: version, setVer: setVer}
}

func (t *table[T]) create(id string, row T, unique func(existing T) bool) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %s", shared.ErrAlreadyExists, t.name, id)
	}
	if unique != nil {
		for _, existing := range t.rows {
			if !unique(existing) {
				var zero T
				return zero, fmt.Errorf("%w: %s conflicts with an existing record", shared.ErrAlreadyExists, t.name)
			}
		}
	}
	if t.version(row) == 0 {
		t.setVer(&row, 1)
	}
	t.rows[id] = t.clone(row)
	return t.clone(row), nil
}

func (t *table[T]) put(id string, row T) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[id] = t.clone(row)
	return t.clone(row)
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(row), true
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if match(row) {
			return t.clone(row), true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) update(id string, row T, expectedVersion int) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var zero T
	current, ok := t.rows[id]
	if !ok {
		return zero, fmt.Errorf("%w: %s %s", shared.ErrNotFound, t.name, id)
	}
	if t.version(current) != expectedVersion {
		return zero, fmt.Errorf("%w: %s %s is at version %d, expected %d", shared.ErrConflict, t.name, id, t.version(current), expectedVersion)
	}
	t.setVer(&row, expectedVersion+1)
	t.rows[id] = t.clone(row)
	return t.clone(row), nil
}
