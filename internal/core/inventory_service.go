package core

import (
	"context"
	"fmt"
	"strings"
)

// Repository stores records of one type. Implementations assign ids on
// Create and preserve insertion order on List.
type Repository[T any] interface {
	// List returns every record accepted by filter, in insertion order.
	// A nil filter accepts all records.
	List(ctx context.Context, filter func(T) bool) ([]T, error)

	// Get returns the record with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (T, error)

	// Create stores item under a freshly assigned id and returns the stored value.
	Create(ctx context.Context, item T) (T, error)

	// Update replaces the record whose id matches item, or returns ErrNotFound.
	Update(ctx context.Context, item T) (T, error)

	// Delete removes the record with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// Collection puts normalization and validation in front of a Repository.
// Every CRUD page of the dashboard goes through one.
type Collection[T Record[T]] struct {
	name     string
	repo     Repository[T]
	conflict func(existing, candidate T) bool

	// onCreate, when set, fixes fields a new record may not choose itself.
	onCreate func(T) T
}

// NewCollection wraps repo. conflict, when non-nil, reports whether a
// candidate clashes with an existing record; the candidate is then rejected
// with ErrConflict.
func NewCollection[T Record[T]](name string, repo Repository[T], conflict func(existing, candidate T) bool) *Collection[T] {
	return &Collection[T]{name: name, repo: repo, conflict: conflict}
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) List(ctx context.Context, filter func(T) bool) ([]T, error) {
	items, err := c.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	return items, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	item, err := c.repo.Get(ctx, id)
	if err != nil {
		return item, fmt.Errorf("get %s %q: %w", c.name, id, err)
	}
	return item, nil
}

// Create normalizes and validates item, then stores it under a new id.
// Collections with a lifecycle start every new record in its first state.
func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	if c.onCreate != nil {
		item = c.onCreate(item)
	}
	return c.insert(ctx, item)
}

// insert stores item as given. Seeding uses it to load records that are
// already past their first state.
func (c *Collection[T]) insert(ctx context.Context, item T) (T, error) {
	var zero T
	item = item.Normalized().WithEntityID("")
	if err := item.Validate(); err != nil {
		return zero, fmt.Errorf("create %s: %w", c.name, err)
	}
	if err := c.checkConflict(ctx, item); err != nil {
		return zero, fmt.Errorf("create %s: %w", c.name, err)
	}
	created, err := c.repo.Create(ctx, item)
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", c.name, err)
	}
	return created, nil
}

// Update normalizes and validates item, then replaces the record with id.
func (c *Collection[T]) Update(ctx context.Context, id string, item T) (T, error) {
	var zero T
	item = item.Normalized().WithEntityID(id)
	if err := item.Validate(); err != nil {
		return zero, fmt.Errorf("update %s %q: %w", c.name, id, err)
	}
	if _, err := c.repo.Get(ctx, id); err != nil {
		return zero, fmt.Errorf("update %s %q: %w", c.name, id, err)
	}
	if err := c.checkConflict(ctx, item); err != nil {
		return zero, fmt.Errorf("update %s %q: %w", c.name, id, err)
	}
	updated, err := c.repo.Update(ctx, item)
	if err != nil {
		return zero, fmt.Errorf("update %s %q: %w", c.name, id, err)
	}
	return updated, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s %q: %w", c.name, id, err)
	}
	return nil
}

// checkConflict compares candidate against every other record. The check and
// the write are not atomic; concurrent writers may both pass.
func (c *Collection[T]) checkConflict(ctx context.Context, candidate T) error {
	if c.conflict == nil {
		return nil
	}
	clashes, err := c.repo.List(ctx, func(existing T) bool {
		return existing.EntityID() != candidate.EntityID() && c.conflict(existing, candidate)
	})
	if err != nil {
		return err
	}
	if len(clashes) > 0 {
		return ErrConflict
	}
	return nil
}

// InventoryRepositories holds one Repository per inventory collection.
type InventoryRepositories struct {
	Stock       Repository[StockItem]
	Receipts    Repository[Receipt]
	Deliveries  Repository[Delivery]
	Adjustments Repository[Adjustment]
	Transfers   Repository[Transfer]
	Moves       Repository[MoveRecord]
	Warehouses  Repository[Warehouse]
}

// InventoryService exposes the dashboard's record collections.
type InventoryService struct {
	Stock       *Collection[StockItem]
	Receipts    *Collection[Receipt]
	Deliveries  *Collection[Delivery]
	Adjustments *Collection[Adjustment]
	Transfers   *Collection[Transfer]
	Moves       *Collection[MoveRecord]
	Warehouses  *Collection[Warehouse]
}

func NewInventoryService(r InventoryRepositories) *InventoryService {
	s := &InventoryService{
		Stock: NewCollection("stock", r.Stock, func(a, b StockItem) bool {
			return b.Barcode != "" && a.Barcode == b.Barcode
		}),
		Receipts:    NewCollection[Receipt]("receipts", r.Receipts, nil),
		Deliveries:  NewCollection[Delivery]("deliveries", r.Deliveries, nil),
		Adjustments: NewCollection[Adjustment]("adjustments", r.Adjustments, nil),
		Transfers:   NewCollection[Transfer]("transfers", r.Transfers, nil),
		Moves: NewCollection("moves", r.Moves, func(a, b MoveRecord) bool {
			return strings.EqualFold(a.Reference, b.Reference)
		}),
		Warehouses: NewCollection("warehouses", r.Warehouses, func(a, b Warehouse) bool {
			return a.Number == b.Number
		}),
	}
	s.Deliveries.onCreate = func(d Delivery) Delivery {
		d.Status = DeliveryPending
		return d
	}
	s.Transfers.onCreate = func(t Transfer) Transfer {
		t.Status = TransferPending
		return t
	}
	return s
}

// SetOnHand records a stock count for one item. The reserved quantity is
// kept, so FreeToUse moves with OnHand and never drops below zero.
func (s *InventoryService) SetOnHand(ctx context.Context, id string, onHand int) (StockItem, error) {
	item, err := s.Stock.Get(ctx, id)
	if err != nil {
		return StockItem{}, err
	}
	return s.Stock.Update(ctx, id, item.WithOnHand(onHand))
}

// Seed loads the dashboard's sample records through the validating collections.
func (s *InventoryService) Seed(ctx context.Context) error {
	inv := SeedInventory()
	if err := seed(ctx, s.Stock, inv.Stock); err != nil {
		return err
	}
	if err := seed(ctx, s.Receipts, inv.Receipts); err != nil {
		return err
	}
	if err := seed(ctx, s.Deliveries, inv.Deliveries); err != nil {
		return err
	}
	if err := seed(ctx, s.Adjustments, inv.Adjustments); err != nil {
		return err
	}
	if err := seed(ctx, s.Transfers, inv.Transfers); err != nil {
		return err
	}
	if err := seed(ctx, s.Moves, inv.Moves); err != nil {
		return err
	}
	return seed(ctx, s.Warehouses, inv.Warehouses)
}

func seed[T Record[T]](ctx context.Context, c *Collection[T], items []T) error {
	for _, item := range items {
		if _, err := c.insert(ctx, item); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}
