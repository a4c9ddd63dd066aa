/*
store.go - Persistence interface for resource records

PURPOSE:
  Defines the interface between the endpoints and record storage.
  One Store instance owns the ordered record list of one resource type
  and is injected into the HTTP handler, so tests can build isolated
  stores per case.

KEY INTERFACES:
  Record: anything with a synthetic integer id
  Store:  ordered list with append, in-place update, delete, reset

IDENTITY:
  Create assigns id = max(existing ids) + 1 (1 for an empty store) while
  holding the store's write lock, so concurrent creates never collide.
  The caller's build function derives business ids from that id.

ORDER:
  List returns records in store order: seed order, then creation order.
  Update keeps a record's position; Delete closes the gap.

IMPLEMENTATIONS:
  - generic/store/memory.go: In-memory, reset on restart (default)
  - store/sqlite/sqlite.go:  SQLite-backed, same contract

SEE ALSO:
  - query.go: Runs over the List snapshot
  - errors.go: ErrNotFound
*/
package generic

import "context"

// Record is a stored row with a synthetic integer identity.
type Record interface {
	RecordID() int
}

// Store handles persistence of one resource's records.
type Store[T Record] interface {
	// List returns a snapshot of all records in store order.
	List(ctx context.Context) ([]T, error)

	// Find returns the first record matching pred, or ErrNotFound.
	Find(ctx context.Context, pred func(T) bool) (T, error)

	// Create assigns the next id, calls build with it and appends the
	// result. If build fails nothing is stored.
	Create(ctx context.Context, build func(id int) (T, error)) (T, error)

	// Update replaces the first record matching pred with apply's result,
	// in place. If apply fails the stored record is unchanged.
	Update(ctx context.Context, pred func(T) bool, apply func(T) (T, error)) (T, error)

	// Delete removes the first record matching pred, or returns ErrNotFound.
	Delete(ctx context.Context, pred func(T) bool) error

	// Reset replaces the whole list with recs.
	Reset(ctx context.Context, recs []T) error
}

// NextID returns max(id)+1 over recs, 1 when recs is empty.
func NextID[T Record](recs []T) int {
	max := 0
	for _, r := range recs {
		if id := r.RecordID(); id > max {
			max = id
		}
	}
	return max + 1
}
