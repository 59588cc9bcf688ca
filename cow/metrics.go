package cow

// Metrics exposes sharing-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
// All callbacks run on the Handle hot path; keep them cheap.
type Metrics interface {
	// Wrap — a fresh cell was allocated for a new Handle.
	Wrap()
	// Clone — a Handle was cloned (no payload copy).
	Clone()
	// Copy — a mutation forced a private copy of `bytes` payload bytes.
	Copy(bytes int)
	// Destroy — the last reference to a cell was dropped.
	Destroy()
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when
// no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Wrap()          {}
func (NoopMetrics) Clone()         {}
func (NoopMetrics) Copy(bytes int) {}
func (NoopMetrics) Destroy()       {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
