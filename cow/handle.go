package cow

// Handle is the user-facing wrapper around a shared cell. Cloning a Handle
// is O(1) regardless of payload size: the clone aliases the same cell and
// bumps its reference count. Mutating through a Handle that still shares
// its cell forces a private copy first, so no aliasing Handle can ever
// observe the edit.
//
// Concurrency contract: like most Go values, a Handle supports concurrent
// readers OR one writer. Read, Clone, and StrongCount may run concurrently
// on the same Handle; Mutate, TryUnwrap, and Release require exclusive
// access to it. To share a payload across goroutines, Clone the Handle and
// hand the clone over (genuine sharing, count goes up), or move the Handle
// itself (ownership transfer, count unchanged). Distinct Handles aliasing
// the same cell may be used from different goroutines without restriction.
type Handle[T any] struct {
	c   *cell[T]
	opt Options[T]
}

// New wraps v in a Handle that is the sole owner of a fresh cell.
func New[T any](v T, opt Options[T]) *Handle[T] {
	opt = opt.withDefaults()
	h := &Handle[T]{c: newCell(v), opt: opt}
	opt.Metrics.Wrap()
	return h
}

// Clone returns a new Handle aliasing the same cell. The payload is never
// copied here; the cost is a single atomic increment. Reports one clone
// event (with the payload size, for the bytes-saved estimate).
func (h *Handle[T]) Clone() *Handle[T] {
	c := h.cell()
	c.incRef()
	h.opt.Stats.RecordClone(h.opt.sizeOf(c.val))
	h.opt.Metrics.Clone()
	return &Handle[T]{c: c, opt: h.opt}
}

// Read returns the payload for reading. The share count is untouched and
// no copy can be triggered. For reference-typed payloads (slices, maps)
// the result is a view into shared storage: callers must not write through
// it — use Mutate for that. Concurrent Read calls through aliasing Handles
// are safe.
func (h *Handle[T]) Read() T {
	return h.cell().val
}

// Mutate returns the payload for writing, forcing a private copy first if
// the cell is still shared. After Mutate returns, this Handle is always
// the sole owner of the cell the pointer leads into.
//
// The returned pointer is valid until the next Clone, Mutate, TryUnwrap,
// or Release on this Handle.
func (h *Handle[T]) Mutate() *T {
	c := h.cell()
	// Exclusive-vs-shared is a single atomic compare on the count.
	// If it reads 1, this Handle holds the only reference: a concurrent
	// clone of this cell would have to go through this very Handle, and
	// Mutate requires exclusive access to it, so the count cannot rise
	// under us and the in-place write cannot race. If the compare sees
	// anything else, we take the copy path; a reference dropped in the
	// meantime just means one affordable extra copy.
	if c.refs.CompareAndSwap(1, 1) {
		return &c.val
	}

	fresh := newCell(h.opt.cloneValue(c.val))
	size := h.opt.sizeOf(fresh.val)
	if c.decRef() {
		h.opt.Metrics.Destroy()
	}
	h.c = fresh
	h.opt.Stats.RecordCopy(size)
	h.opt.Metrics.Copy(size)
	return &fresh.val
}

// StrongCount returns the current share count of the referenced cell.
// Diagnostic only: other goroutines may change the count at any moment,
// so callers must not use it to decide whether mutation is safe — Mutate
// makes that decision internally.
func (h *Handle[T]) StrongCount() int {
	return int(h.cell().count())
}

// TryUnwrap takes the payload out by value without copying, if and only if
// this Handle is the sole owner. On success the Handle is consumed (as if
// released) and ok is true. If the cell is still shared, the Handle is left
// untouched and ok is false — an expected outcome to branch on, not an
// error.
func (h *Handle[T]) TryUnwrap() (v T, ok bool) {
	c := h.cell()
	// Claiming the payload and retiring the cell is one atomic compare:
	// a concurrent clone through an aliasing Handle keeps the count above
	// 1 and the claim simply fails.
	if !c.refs.CompareAndSwap(1, 0) {
		return v, false
	}
	v = c.val
	var zero T
	c.val = zero
	h.c = nil
	h.opt.Metrics.Destroy()
	return v, true
}

// Release drops this Handle's reference, destroying the cell if it was the
// last one. The Handle must not be used afterwards. Releasing an already
// released Handle is a no-op, so `defer h.Release()` is always safe.
func (h *Handle[T]) Release() {
	if h.c == nil {
		return
	}
	if h.c.decRef() {
		h.opt.Metrics.Destroy()
	}
	h.c = nil
}

// cell returns the referenced cell, panicking on use-after-release.
// A released Handle dangles by definition; failing loudly here is what
// keeps every live Handle pointing at a valid cell.
func (h *Handle[T]) cell() *cell[T] {
	if h.c == nil {
		panic("cow: use of released Handle")
	}
	return h.c
}
