package cow

import "sync/atomic"

// cell is the unit of sharing: one payload plus an atomic reference count.
// A cell is jointly owned by every Handle that points at it; the count is
// the number of such live Handles. Counts on a single cell are totally
// ordered; no ordering is guaranteed across different cells.
type cell[T any] struct {
	refs atomic.Int64
	val  T
}

// newCell allocates a cell holding v with a count of 1.
func newCell[T any](v T) *cell[T] {
	c := &cell[T]{val: v}
	c.refs.Store(1)
	return c
}

// incRef adds one reference. Callers must already hold a reference,
// so the count can never be observed at 0 here.
func (c *cell[T]) incRef() {
	c.refs.Add(1)
}

// decRef drops one reference and reports whether this call destroyed the
// cell (count reached 0). On destruction the payload is zeroed so the
// garbage collector can reclaim anything it points to immediately.
// Safe to call concurrently from goroutines each holding a distinct Handle.
func (c *cell[T]) decRef() bool {
	if c.refs.Add(-1) != 0 {
		return false
	}
	// Exactly one caller observes the 1->0 transition.
	var zero T
	c.val = zero
	return true
}

// count returns the current reference count. Diagnostic only: by the time
// the caller looks at the result, the count may already have changed.
func (c *cell[T]) count() int64 {
	return c.refs.Load()
}
