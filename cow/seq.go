package cow

import (
	"slices"

	"github.com/IvanBrykalov/cowshare/internal/util"
)

// Seq is an ordered sequence with copy-on-write sharing, a thin façade
// over Handle[[]E]. Cloning is O(1); a mutation through a clone that still
// shares its backing array copies the elements exactly once.
//
// The default Clone copies the slice one level deep: elements themselves
// are copied by assignment. Pointer-typed elements therefore stay shared
// across copies; supply Options.Clone if that matters.
type Seq[E any] struct {
	h *Handle[[]E]
}

// NewSeq wraps vs in a Seq that is the sole owner of its backing array.
// vs itself is adopted, not copied; the caller must not use it afterwards.
func NewSeq[E any](vs []E, opt Options[[]E]) *Seq[E] {
	if opt.Clone == nil {
		opt.Clone = func(s []E) []E { return slices.Clone(s) }
	}
	if opt.Size == nil {
		opt.Size = util.SliceBytes[E]
	}
	return &Seq[E]{h: New(vs, opt)}
}

// Clone returns a new Seq sharing the same backing array (no copy).
func (q *Seq[E]) Clone() *Seq[E] { return &Seq[E]{h: q.h.Clone()} }

// Len returns the number of elements.
func (q *Seq[E]) Len() int { return len(q.h.Read()) }

// At returns the element at index i. Panics if i is out of range.
func (q *Seq[E]) At(i int) E { return q.h.Read()[i] }

// Values returns an independent copy of the elements, safe to hold across
// later mutations.
func (q *Seq[E]) Values() []E { return slices.Clone(q.h.Read()) }

// Push appends v to the sequence.
func (q *Seq[E]) Push(v E) {
	p := q.h.Mutate()
	*p = append(*p, v)
}

// Insert places v at index i, shifting later elements right.
// Panics if i is out of range [0, Len()].
func (q *Seq[E]) Insert(i int, v E) {
	p := q.h.Mutate()
	*p = slices.Insert(*p, i, v)
}

// RemoveAt deletes the element at index i, shifting later elements left.
// Panics if i is out of range.
func (q *Seq[E]) RemoveAt(i int) {
	p := q.h.Mutate()
	*p = slices.Delete(*p, i, i+1)
}

// Set replaces the element at index i. Panics if i is out of range.
func (q *Seq[E]) Set(i int, v E) {
	p := q.h.Mutate()
	(*p)[i] = v
}

// StrongCount returns the share count of the backing array (diagnostic).
func (q *Seq[E]) StrongCount() int { return q.h.StrongCount() }

// TryUnwrap takes the backing slice out without copying if this Seq is the
// sole owner, consuming the Seq. Otherwise the Seq is unchanged and ok is
// false.
func (q *Seq[E]) TryUnwrap() (vs []E, ok bool) { return q.h.TryUnwrap() }

// Release drops this Seq's reference to the backing array.
func (q *Seq[E]) Release() { q.h.Release() }
