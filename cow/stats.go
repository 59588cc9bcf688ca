package cow

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Stats is an immutable snapshot of a Tracker.
type Stats struct {
	// Clones is the number of Handle.Clone calls.
	Clones uint64
	// Copies is the number of forced private copies.
	Copies uint64
	// CopyRate is Copies/Clones, the fraction of clones whose sharing was
	// eventually broken by a mutation. 0 when no clones were performed.
	CopyRate float64
	// BytesSaved estimates payload bytes that sharing avoided copying:
	// bytes an eager copy would have duplicated at each clone, minus
	// bytes actually duplicated by forced copies.
	BytesSaved uint64
}

// String renders the snapshot as a one-line human-readable report.
func (s Stats) String() string {
	return fmt.Sprintf("clones=%d copies=%d copy_rate=%.1f%% saved=%s (%d B)",
		s.Clones, s.Copies, s.CopyRate*100,
		humanize.IBytes(s.BytesSaved), s.BytesSaved)
}
