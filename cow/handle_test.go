package cow

import (
	"slices"
	"testing"
)

// intsOptions builds Options for []int payloads with a private tracker,
// so tests never observe each other's counters.
func intsOptions(t *testing.T) ([]int, Options[[]int]) {
	t.Helper()
	return []int{1, 2, 3}, Options[[]int]{
		Clone: func(s []int) []int { return slices.Clone(s) },
		Size:  func(s []int) int { return 8 * len(s) },
		Stats: NewTracker(),
	}
}

// Clone must be O(1) bookkeeping: counts go up, payloads stay identical,
// and the copy counter never moves.
func TestHandle_CloneIsCheap(t *testing.T) {
	t.Parallel()

	vs, opt := intsOptions(t)
	a := New(vs, opt)
	defer a.Release()

	b := a.Clone()
	defer b.Release()

	if got := a.StrongCount(); got != 2 {
		t.Fatalf("StrongCount after clone: want 2, got %d", got)
	}
	if !slices.Equal(a.Read(), b.Read()) {
		t.Fatalf("clone payload mismatch: %v vs %v", a.Read(), b.Read())
	}
	if st := opt.Stats.Snapshot(); st.Clones != 1 || st.Copies != 0 {
		t.Fatalf("want 1 clone / 0 copies, got %+v", st)
	}
}

// Mutating one handle must leave every aliasing handle untouched.
func TestHandle_MutationIsolatesSoleOwner(t *testing.T) {
	t.Parallel()

	vs, opt := intsOptions(t)
	a := New(vs, opt)
	defer a.Release()
	b := a.Clone()
	defer b.Release()

	p := a.Mutate()
	*p = append(*p, 4)

	if want := []int{1, 2, 3}; !slices.Equal(b.Read(), want) {
		t.Fatalf("b diverged: want %v, got %v", want, b.Read())
	}
	if want := []int{1, 2, 3, 4}; !slices.Equal(a.Read(), want) {
		t.Fatalf("a after mutate: want %v, got %v", want, a.Read())
	}
}

// A sole owner mutates in place: no copy event, same cell.
func TestHandle_SoleOwnerMutatesInPlace(t *testing.T) {
	t.Parallel()

	vs, opt := intsOptions(t)
	a := New(vs, opt)
	defer a.Release()

	if got := a.StrongCount(); got != 1 {
		t.Fatalf("fresh handle StrongCount: want 1, got %d", got)
	}
	*a.Mutate() = []int{9}

	if st := opt.Stats.Snapshot(); st.Copies != 0 {
		t.Fatalf("sole-owner mutate must not copy, got %+v", st)
	}
	if want := []int{9}; !slices.Equal(a.Read(), want) {
		t.Fatalf("payload after in-place mutate: want %v, got %v", want, a.Read())
	}
}

// A shared mutation forces exactly one copy and detaches the mutator
// from the old cell.
func TestHandle_SharedMutationForcesOneCopy(t *testing.T) {
	t.Parallel()

	vs, opt := intsOptions(t)
	a := New(vs, opt)
	defer a.Release()
	b := a.Clone()
	defer b.Release()

	a.Mutate()

	if st := opt.Stats.Snapshot(); st.Copies != 1 {
		t.Fatalf("want exactly 1 copy, got %+v", st)
	}
	// a left b's cell: both are sole owners now.
	if got := b.StrongCount(); got != 1 {
		t.Fatalf("b.StrongCount after a.Mutate: want 1, got %d", got)
	}
	if got := a.StrongCount(); got != 1 {
		t.Fatalf("a.StrongCount after Mutate: want 1, got %d", got)
	}
}

// Mutate is idempotent for a sole owner: the second call must not copy again.
func TestHandle_RepeatedMutateCopiesOnce(t *testing.T) {
	t.Parallel()

	vs, opt := intsOptions(t)
	a := New(vs, opt)
	defer a.Release()
	b := a.Clone()
	defer b.Release()

	a.Mutate()
	a.Mutate()
	a.Mutate()

	if st := opt.Stats.Snapshot(); st.Copies != 1 {
		t.Fatalf("repeated Mutate must copy once, got %+v", st)
	}
}

func TestHandle_TryUnwrap(t *testing.T) {
	t.Parallel()

	vs, opt := intsOptions(t)

	// Shared: unwrap must fail and leave the handle usable.
	a := New(vs, opt)
	b := a.Clone()
	if _, ok := a.TryUnwrap(); ok {
		t.Fatal("TryUnwrap must fail while shared")
	}
	if got := a.StrongCount(); got != 2 {
		t.Fatalf("failed TryUnwrap must not change the count, got %d", got)
	}
	b.Release()

	// Sole owner: unwrap hands the payload out and consumes the handle.
	v, ok := a.TryUnwrap()
	if !ok {
		t.Fatal("TryUnwrap must succeed for a sole owner")
	}
	if want := []int{1, 2, 3}; !slices.Equal(v, want) {
		t.Fatalf("unwrapped payload: want %v, got %v", want, v)
	}
	if st := opt.Stats.Snapshot(); st.Copies != 0 {
		t.Fatalf("TryUnwrap must never copy, got %+v", st)
	}
}

// Default Clone (nil) copies by assignment: fine for value payloads.
func TestHandle_ValuePayloadDefaults(t *testing.T) {
	t.Parallel()

	opt := Options[int]{Stats: NewTracker()}
	a := New(41, opt)
	defer a.Release()
	b := a.Clone()
	defer b.Release()

	*b.Mutate() = 42

	if got := a.Read(); got != 41 {
		t.Fatalf("a must keep 41, got %d", got)
	}
	if got := b.Read(); got != 42 {
		t.Fatalf("b must hold 42, got %d", got)
	}
}

func TestHandle_UseAfterReleasePanics(t *testing.T) {
	t.Parallel()

	_, opt := intsOptions(t)
	a := New([]int{1}, opt)
	a.Release()
	a.Release() // releasing twice is a no-op

	defer func() {
		if recover() == nil {
			t.Fatal("Read on a released handle must panic")
		}
	}()
	a.Read()
}

// A released clone returns the cell to exclusive ownership, so the next
// mutation is in place again.
func TestHandle_ReleaseRestoresExclusivity(t *testing.T) {
	t.Parallel()

	vs, opt := intsOptions(t)
	a := New(vs, opt)
	defer a.Release()

	b := a.Clone()
	b.Release()

	a.Mutate()
	if st := opt.Stats.Snapshot(); st.Copies != 0 {
		t.Fatalf("mutate after clone release must be in place, got %+v", st)
	}
}
