// Package cow provides generic copy-on-write sharing: many Handles share a
// single payload at the cost of one atomic increment per clone, and a
// private copy is made only at the moment a Handle mutates while others
// still share the cell. Built-in statistics report how often sharing
// actually avoided a copy.
//
// # Design
//
//   - Sharing unit: a heap-allocated cell holds one payload and an atomic
//     reference count. The count always equals the number of live Handles
//     pointing at the cell; the cell dies exactly on the 1->0 transition.
//
//   - Handle[T]: Clone is O(1) and never touches the payload. Read returns
//     the payload without affecting the count. Mutate hands out a writable
//     pointer: in place when the Handle is sole owner, into a freshly
//     copied cell otherwise. After Mutate the Handle is always sole owner,
//     so repeated mutation never copies twice.
//
//   - Exclusive-vs-shared is a single atomic compare on the count, not a
//     load followed by a branch. Combined with the usual Go contract on the
//     Handle itself (concurrent readers or one writer) this closes the
//     classic check-then-act race against a concurrent clone of the same
//     cell: a count of 1 means the mutating goroutine holds the only path
//     to the cell.
//
//   - Adapters: Text (byte buffer), Seq (slice), Dict (map) wrap a generic
//     Handle and forward every mutating operation through exactly one
//     Mutate call. They add convenience, never new sharing semantics.
//
//   - Statistics: every clone and every forced copy reports to a Tracker
//     (process-wide by default, injectable for tests). Snapshot yields
//     clone/copy counts, the copy rate, and a bytes-saved estimate.
//
//   - Metrics: Options.Metrics receives Wrap/Clone/Copy/Destroy signals.
//     By default NoopMetrics is used; plug the Prometheus adapter in
//     metrics/prom to export them.
//
// # Basic usage
//
//	a := cow.NewText("Hello, CoW!", cow.Options[[]byte]{})
//	defer a.Release()
//
//	b := a.Clone() // O(1), shares the buffer
//	defer b.Release()
//
//	b.Append(" - Modified") // first write through b copies once
//	_ = a.String()          // still "Hello, CoW!"
//
// # Generic Handle
//
//	h := cow.New([]int{1, 2, 3}, cow.Options[[]int]{
//	    Clone: slices.Clone[[]int],
//	    Size:  func(s []int) int { return 8 * len(s) },
//	})
//	defer h.Release()
//
//	h2 := h.Clone()
//	p := h2.Mutate() // forced copy; h keeps {1,2,3}
//	*p = append(*p, 4)
//	h2.Release()
//
// # Sharing across goroutines
//
// Either move a Handle to another goroutine (count unchanged) or clone it
// and send the clone:
//
//	for i := 0; i < workers; i++ {
//	    w := h.Clone()
//	    go func() {
//	        defer w.Release()
//	        consume(w.Read())
//	    }()
//	}
//
// Distinct Handles on the same cell are safe to use concurrently: readers
// never block, and a writer that still shares the cell copies instead of
// racing.
//
// # Statistics
//
//	st := cow.Default().Snapshot()
//	fmt.Println(st) // clones=2 copies=1 copy_rate=50.0% saved=11 B (11 B)
//
// The bytes-saved estimate credits the payload size at each clone (the
// bytes an eager copy would have duplicated) and debits the size of each
// forced copy (a copy that happened after all, just later).
package cow
