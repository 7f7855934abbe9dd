package services

import (
	"context"
	"sync"
)

// MemoryTable keeps rows in process memory. Used when no DATABASE_URL is set
// and in tests.
type MemoryTable[T any] struct {
	mu    sync.RWMutex
	rows  map[string]Row[T]
	order []string
}

func NewMemoryTable[T any]() *MemoryTable[T] {
	return &MemoryTable[T]{rows: map[string]Row[T]{}}
}

func (t *MemoryTable[T]) Insert(_ context.Context, row Row[T]) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.rows[row.ID]; exists {
		return ErrConflict
	}
	if row.Key != "" {
		for _, r := range t.rows {
			if r.Key == row.Key {
				return ErrConflict
			}
		}
	}
	t.rows[row.ID] = row
	t.order = append(t.order, row.ID)
	return nil
}

func (t *MemoryTable[T]) Get(_ context.Context, id string) (Row[T], error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return Row[T]{}, ErrNotFound
	}
	return row, nil
}

func (t *MemoryTable[T]) GetByKey(_ context.Context, key string) (Row[T], error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if key == "" {
		return Row[T]{}, ErrNotFound
	}
	for _, r := range t.rows {
		if r.Key == key {
			return r, nil
		}
	}
	return Row[T]{}, ErrNotFound
}

func (t *MemoryTable[T]) ListByOwner(_ context.Context, ownerID string) ([]Row[T], error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []Row[T]{}
	for _, id := range t.order {
		if r := t.rows[id]; r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (t *MemoryTable[T]) Update(_ context.Context, id string, data T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		return ErrNotFound
	}
	row.Data = data
	t.rows[id] = row
	return nil
}

func (t *MemoryTable[T]) Delete(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}
