// Package store holds the in-process implementations of the core
// repositories and preference stores.
package store

import (
	"context"
	"sync"

	"stockmaster/internal/core"

	"github.com/google/uuid"
)

// MemoryRepository is a core.Repository kept in memory. Records are values,
// so callers never share state with the store.
type MemoryRepository[T core.Entity[T]] struct {
	mu    sync.RWMutex
	order []string
	items map[string]T
}

func NewMemoryRepository[T core.Entity[T]]() *MemoryRepository[T] {
	return &MemoryRepository[T]{items: make(map[string]T)}
}

func (r *MemoryRepository[T]) List(ctx context.Context, filter func(T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if filter == nil || filter(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MemoryRepository[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return zero, core.ErrNotFound
	}
	return item, nil
}

func (r *MemoryRepository[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	item = item.WithEntityID(uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.EntityID()] = item
	r.order = append(r.order, item.EntityID())
	return item, nil
}

func (r *MemoryRepository[T]) Update(ctx context.Context, item T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.EntityID()]; !ok {
		return zero, core.ErrNotFound
	}
	r.items[item.EntityID()] = item
	return item, nil
}

func (r *MemoryRepository[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// NewInventoryRepositories returns empty memory repositories for every
// inventory collection.
func NewInventoryRepositories() core.InventoryRepositories {
	return core.InventoryRepositories{
		Stock:       NewMemoryRepository[core.StockItem](),
		Receipts:    NewMemoryRepository[core.Receipt](),
		Deliveries:  NewMemoryRepository[core.Delivery](),
		Adjustments: NewMemoryRepository[core.Adjustment](),
		Transfers:   NewMemoryRepository[core.Transfer](),
		Moves:       NewMemoryRepository[core.MoveRecord](),
		Warehouses:  NewMemoryRepository[core.Warehouse](),
	}
}
