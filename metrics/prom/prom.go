package prom

import (
	"github.com/IvanBrykalov/cowshare/cow"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements cow.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	clones      prometheus.Counter
	copies      prometheus.Counter
	copiedBytes prometheus.Counter
	cells       prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		clones: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "clones_total",
			Help:        "Handle clones (no payload copy)",
			ConstLabels: constLabels,
		}),
		copies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "copies_total",
			Help:        "Forced private copies",
			ConstLabels: constLabels,
		}),
		copiedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "copied_bytes_total",
			Help:        "Payload bytes duplicated by forced copies",
			ConstLabels: constLabels,
		}),
		cells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "live_cells",
			Help:        "Shared cells currently alive",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.clones, a.copies, a.copiedBytes, a.cells)
	return a
}

// Wrap counts a freshly allocated cell.
func (a *Adapter) Wrap() { a.cells.Inc() }

// Clone increments the clone counter.
func (a *Adapter) Clone() { a.clones.Inc() }

// Copy counts a forced copy: one more cell alive, `bytes` payload bytes duplicated.
func (a *Adapter) Copy(bytes int) {
	a.copies.Inc()
	a.copiedBytes.Add(float64(bytes))
	a.cells.Inc()
}

// Destroy counts the death of a cell (last reference dropped).
func (a *Adapter) Destroy() { a.cells.Dec() }

// Compile-time check: ensure Adapter implements cow.Metrics.
var _ cow.Metrics = (*Adapter)(nil)
