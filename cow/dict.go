package cow

import (
	"maps"
	"slices"

	"github.com/IvanBrykalov/cowshare/internal/util"
)

// Dict is an associative map with copy-on-write sharing, a thin façade
// over Handle[map[K]V]. Cloning is O(1); a mutation through a clone that
// still shares its map copies the entries exactly once.
//
// The default Clone copies entries by assignment; pointer-typed values
// stay shared across copies — supply Options.Clone if that matters.
type Dict[K comparable, V any] struct {
	h *Handle[map[K]V]
}

// NewDict wraps m in a Dict that is the sole owner of the map. A nil m is
// replaced by an empty map. m is adopted, not copied; the caller must not
// use it afterwards.
func NewDict[K comparable, V any](m map[K]V, opt Options[map[K]V]) *Dict[K, V] {
	if m == nil {
		m = make(map[K]V)
	}
	if opt.Clone == nil {
		opt.Clone = func(m map[K]V) map[K]V { return maps.Clone(m) }
	}
	if opt.Size == nil {
		opt.Size = util.MapBytes[K, V]
	}
	return &Dict[K, V]{h: New(m, opt)}
}

// Clone returns a new Dict sharing the same map (no copy).
func (d *Dict[K, V]) Clone() *Dict[K, V] { return &Dict[K, V]{h: d.h.Clone()} }

// Len returns the number of entries.
func (d *Dict[K, V]) Len() int { return len(d.h.Read()) }

// Get returns the value for k and a presence flag.
func (d *Dict[K, V]) Get(k K) (V, bool) {
	v, ok := d.h.Read()[k]
	return v, ok
}

// Keys returns the keys in unspecified order, as an independent slice.
func (d *Dict[K, V]) Keys() []K {
	return slices.Collect(maps.Keys(d.h.Read()))
}

// Put inserts or updates k→v.
func (d *Dict[K, V]) Put(k K, v V) {
	p := d.h.Mutate()
	(*p)[k] = v
}

// Delete removes k if present and reports whether it existed.
// Deleting an absent key is a pure read and cannot force a copy.
func (d *Dict[K, V]) Delete(k K) bool {
	if _, ok := d.h.Read()[k]; !ok {
		return false
	}
	p := d.h.Mutate()
	delete(*p, k)
	return true
}

// StrongCount returns the share count of the underlying map (diagnostic).
func (d *Dict[K, V]) StrongCount() int { return d.h.StrongCount() }

// TryUnwrap takes the map out without copying if this Dict is the sole
// owner, consuming the Dict. Otherwise the Dict is unchanged and ok is
// false.
func (d *Dict[K, V]) TryUnwrap() (m map[K]V, ok bool) { return d.h.TryUnwrap() }

// Release drops this Dict's reference to the map.
func (d *Dict[K, V]) Release() { d.h.Release() }
