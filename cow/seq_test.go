package cow

import (
	"slices"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestSeq_BasicOps(t *testing.T) {
	t.Parallel()

	q := NewSeq([]int{1, 2, 3}, Options[[]int]{Stats: NewTracker()})
	defer q.Release()

	q.Push(4)
	q.Insert(0, 0)
	q.Set(1, 10)
	q.RemoveAt(4)

	if want := []int{0, 10, 2, 3}; !slices.Equal(q.Values(), want) {
		t.Fatalf("want %v, got %v", want, q.Values())
	}
	if q.Len() != 4 || q.At(1) != 10 {
		t.Fatalf("Len/At mismatch: len=%d at(1)=%d", q.Len(), q.At(1))
	}
}

func TestSeq_CloneDivergence(t *testing.T) {
	t.Parallel()

	stats := NewTracker()
	a := NewSeq([]string{"a", "b"}, Options[[]string]{Stats: stats})
	defer a.Release()
	b := a.Clone()
	defer b.Release()

	b.Push("c")

	if want := []string{"a", "b"}; !slices.Equal(a.Values(), want) {
		t.Fatalf("a diverged: %v", a.Values())
	}
	if want := []string{"a", "b", "c"}; !slices.Equal(b.Values(), want) {
		t.Fatalf("b: %v", b.Values())
	}
	if st := stats.Snapshot(); st.Clones != 1 || st.Copies != 1 {
		t.Fatalf("want 1 clone / 1 copy, got %+v", st)
	}
}

// Ten goroutines each clone the sequence and sum it via reads only.
// Nothing mutates, so the copy counter must stay at zero and the
// original payload must be intact after all workers join.
func TestSeq_ReadFanOut(t *testing.T) {
	t.Parallel()

	stats := NewTracker()
	a := NewSeq([]int{1, 2, 3, 4, 5}, Options[[]int]{Stats: stats})
	defer a.Release()

	const workers = 10
	sums := make([]int, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		w := a.Clone() // cloned here, moved into the goroutine
		g.Go(func() error {
			defer w.Release()
			for j := 0; j < w.Len(); j++ {
				sums[i] += w.At(j)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	for i, s := range sums {
		if s != 15 {
			t.Fatalf("worker %d sum: want 15, got %d", i, s)
		}
	}
	if st := stats.Snapshot(); st.Clones != workers || st.Copies != 0 {
		t.Fatalf("want %d clones / 0 copies, got %+v", workers, st)
	}
	if want := []int{1, 2, 3, 4, 5}; !slices.Equal(a.Values(), want) {
		t.Fatalf("original payload changed: %v", a.Values())
	}
}
