package cow

import (
	"github.com/IvanBrykalov/cowshare/internal/util"
)

// Tracker accumulates sharing statistics: how often Handles were cloned,
// how often a mutation forced a private copy, and how many payload bytes
// the sharing avoided copying.
//
// All counters are individually atomic, so a Tracker may be shared by any
// number of Handles across any number of goroutines. Snapshot reads the
// counters one by one; under concurrent traffic the set may be torn as a
// whole (e.g. a clone counted but its bytes not yet) — each field is still
// individually consistent, which is the accepted contract.
//
// The zero value is ready to use. Production code normally relies on the
// process-wide Default() tracker; tests inject their own for isolation.
type Tracker struct {
	// Hot counters on separate cache lines to avoid false sharing when
	// many goroutines clone and copy through the same tracker.
	clones      util.PaddedAtomicUint64
	copies      util.PaddedAtomicUint64
	bytesCloned util.PaddedAtomicUint64
	bytesCopied util.PaddedAtomicUint64
}

// NewTracker returns a fresh, zeroed Tracker.
func NewTracker() *Tracker { return &Tracker{} }

// defaultTracker is the process-wide tracker used when Options.Stats is nil.
var defaultTracker Tracker

// Default returns the process-wide Tracker shared by all Handles that were
// not given a private one.
func Default() *Tracker { return &defaultTracker }

// RecordClone counts one clone event. size is the payload size at clone
// time: bytes that an eager copy would have duplicated right here,
// credited to the savings estimate.
func (t *Tracker) RecordClone(size int) {
	t.clones.Add(1)
	if size > 0 {
		t.bytesCloned.Add(uint64(size))
	}
}

// RecordCopy counts one forced-copy event of size payload bytes.
// The copied bytes are debited from the savings estimate: the copy was
// only deferred, not avoided.
func (t *Tracker) RecordCopy(size int) {
	t.copies.Add(1)
	if size > 0 {
		t.bytesCopied.Add(uint64(size))
	}
}

// Snapshot returns the current counter values as an immutable Stats.
func (t *Tracker) Snapshot() Stats {
	s := Stats{
		Clones: t.clones.Load(),
		Copies: t.copies.Load(),
	}
	if s.Clones > 0 {
		s.CopyRate = float64(s.Copies) / float64(s.Clones)
	}
	// Payloads can grow between clone and copy, so the difference may
	// transiently run negative; clamp rather than report nonsense.
	cloned, copied := t.bytesCloned.Load(), t.bytesCopied.Load()
	if cloned > copied {
		s.BytesSaved = cloned - copied
	}
	return s
}

// Reset zeroes all counters. Intended for test isolation only; counters
// are monotonically non-decreasing during normal operation.
func (t *Tracker) Reset() {
	t.clones.Store(0)
	t.copies.Store(0)
	t.bytesCloned.Store(0)
	t.bytesCopied.Store(0)
}
