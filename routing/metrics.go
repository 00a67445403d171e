package routing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/kinroute/kinematic"
)

// Metrics are the prometheus collectors updated by a Driver.
type Metrics struct {
	SubSteps        prometheus.Counter
	Pixels          prometheus.Counter
	NewtonIter      prometheus.Counter
	NonConverged    prometheus.Counter
	InvalidInflow   prometheus.Counter
	SolveDuration   prometheus.Histogram
	OutletDischarge prometheus.Gauge
	Waves           prometheus.Gauge
	WidestWave      prometheus.Gauge
}

// NewMetrics registers the driver collectors with reg under namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SubSteps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "substeps_total",
			Help:      "Routing sub-steps completed.",
		}),
		Pixels: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pixels_solved_total",
			Help:      "Pixel solves performed.",
		}),
		NewtonIter: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "newton_iterations_total",
			Help:      "Newton updates over all pixel solves.",
		}),
		NonConverged: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "newton_nonconverged_total",
			Help:      "Pixel solves that reached the Newton iteration cap.",
		}),
		InvalidInflow: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_inflow_total",
			Help:      "Sub-steps rejected because of invalid lateral inflow.",
		}),
		SolveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "substep_solve_seconds",
			Help:      "Wall time of one sub-step solve.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		OutletDischarge: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outlet_discharge",
			Help:      "Sum of discharge over all outlets after the last sub-step.",
		}),
		Waves: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "waves",
			Help:      "Number of waves in the routing order.",
		}),
		WidestWave: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "widest_wave",
			Help:      "Pixels in the largest wave.",
		}),
	}
}

func (m *Metrics) observeSolve(st kinematic.Stats, seconds float64) {
	if m == nil {
		return
	}
	m.SubSteps.Inc()
	m.Pixels.Add(float64(st.Pixels))
	m.NewtonIter.Add(float64(st.Iterations))
	m.NonConverged.Add(float64(st.NonConverged))
	m.SolveDuration.Observe(seconds)
}

func (m *Metrics) observeOrder(waves, widest int) {
	if m == nil {
		return
	}
	m.Waves.Set(float64(waves))
	m.WidestWave.Set(float64(widest))
}

func (m *Metrics) observeOutlet(q float64) {
	if m == nil {
		return
	}
	m.OutletDischarge.Set(q)
}

func (m *Metrics) invalidInflow() {
	if m == nil {
		return
	}
	m.InvalidInflow.Inc()
}
