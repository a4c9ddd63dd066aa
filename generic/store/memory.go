// Package store provides Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/insurance-admin/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (default backend, tests)
// =============================================================================

// Memory keeps one resource's records in a slice guarded by a RWMutex.
// Reads return copies; writes, including id assignment, hold the lock.
type Memory[T generic.Record] struct {
	mu   sync.RWMutex
	recs []T
}

// NewMemory returns a store holding a copy of seed.
func NewMemory[T generic.Record](seed []T) *Memory[T] {
	return &Memory[T]{recs: append([]T(nil), seed...)}
}

func (m *Memory[T]) List(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]T, len(m.recs))
	copy(result, m.recs)
	return result, nil
}

func (m *Memory[T]) Find(_ context.Context, pred func(T) bool) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexLocked(pred); i >= 0 {
		return m.recs[i], nil
	}
	var zero T
	return zero, generic.ErrNotFound
}

// Create appends build(nextID). Append-only w.r.t. order.
func (m *Memory[T]) Create(_ context.Context, build func(id int) (T, error)) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := build(generic.NextID(m.recs))
	if err != nil {
		var zero T
		return zero, err
	}
	m.recs = append(m.recs, rec)
	return rec, nil
}

func (m *Memory[T]) Update(_ context.Context, pred func(T) bool, apply func(T) (T, error)) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	i := m.indexLocked(pred)
	if i < 0 {
		return zero, generic.ErrNotFound
	}
	updated, err := apply(m.recs[i])
	if err != nil {
		return zero, err
	}
	m.recs[i] = updated
	return updated, nil
}

func (m *Memory[T]) Delete(_ context.Context, pred func(T) bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(pred)
	if i < 0 {
		return generic.ErrNotFound
	}
	m.recs = append(m.recs[:i:i], m.recs[i+1:]...)
	return nil
}

func (m *Memory[T]) Reset(_ context.Context, recs []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recs = append([]T(nil), recs...)
	return nil
}

func (m *Memory[T]) indexLocked(pred func(T) bool) int {
	for i, r := range m.recs {
		if pred(r) {
			return i
		}
	}
	return -1
}
