package cow

// Options configures a Handle. Zero values are safe; sane defaults are
// applied in New():
//   - nil Clone   => copy by assignment (correct for value-type payloads only)
//   - nil Size    => 0 (disables byte accounting)
//   - nil Stats   => the process-wide Default() tracker
//   - nil Metrics => NoopMetrics
type Options[T any] struct {
	// Clone produces a private copy of the payload. It is invoked exactly
	// once per forced copy, never on Handle.Clone.
	//
	// If nil, the payload is copied by plain assignment. That is correct
	// for value types (numbers, strings, structs of those) but aliases the
	// underlying storage of slices, maps, and pointers — reference-typed
	// payloads must supply a deep-enough Clone.
	Clone func(T) T

	// Size reports the payload size in bytes, used for the bytes-saved
	// estimate. It is consulted at clone time and at forced-copy time.
	// If nil, all payloads report size 0 and the estimate stays at zero.
	Size func(T) int

	// Stats receives one event per Handle.Clone and per forced copy.
	// Inject a private Tracker in tests for isolation; nil selects the
	// process-wide default.
	Stats *Tracker

	// Metrics exposes observability hooks (e.g. the Prometheus adapter in
	// metrics/prom). Callbacks must be cheap; they run on the hot path.
	Metrics Metrics
}

// withDefaults resolves nil fields. Called once in New; the resolved
// Options travel with every Handle cloned from it.
func (o Options[T]) withDefaults() Options[T] {
	if o.Stats == nil {
		o.Stats = Default()
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetrics{}
	}
	return o
}

// cloneValue copies a payload using the configured Clone, falling back to
// assignment when none is set.
func (o Options[T]) cloneValue(v T) T {
	if o.Clone == nil {
		return v
	}
	return o.Clone(v)
}

// sizeOf reports the payload size in bytes (0 when no Size is configured
// or the estimate is negative).
func (o Options[T]) sizeOf(v T) int {
	if o.Size == nil {
		return 0
	}
	n := o.Size(v)
	if n < 0 {
		return 0
	}
	return n
}
