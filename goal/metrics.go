package goal

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records counters and histograms for seek evaluation, namespaced
// "seekgraph_": the four measurements the evaluation loop actually
// produces.
type Metrics struct {
	seeksTotal          *prometheus.CounterVec
	actionInvocations   *prometheus.CounterVec
	probeDuration       prometheus.Histogram
	preconditionsEvaled prometheus.Counter
}

// NewMetrics creates and registers seekgraph's metrics with registry. Pass
// prometheus.DefaultRegisterer for the global registry, or a
// prometheus.NewRegistry() for an isolated one (recommended in tests).
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		seeksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seekgraph",
			Name:      "seeks_total",
			Help:      "Completed top-level seek evaluations by outcome",
		}, []string{"outcome"}), // outcome: met, unmet, error

		actionInvocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seekgraph",
			Name:      "action_invocations_total",
			Help:      "Remediation actions invoked, by node description",
		}, []string{"node"}),

		probeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seekgraph",
			Name:      "probe_duration_ms",
			Help:      "State read plus test evaluation duration in milliseconds",
			Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
		}),

		preconditionsEvaled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "seekgraph",
			Name:      "preconditions_evaluated_total",
			Help:      "Precondition sub-goals evaluated while seeking an actionable node",
		}),
	}
}

// RecordSeek records the terminal outcome of a seek call: "met", "unmet", or
// "error".
func (m *Metrics) RecordSeek(outcome string) {
	if m == nil {
		return
	}
	m.seeksTotal.WithLabelValues(outcome).Inc()
}

// RecordAction records that node's action was invoked.
func (m *Metrics) RecordAction(node string) {
	if m == nil {
		return
	}
	m.actionInvocations.WithLabelValues(node).Inc()
}

// RecordProbeDuration records how long a state read plus test evaluation
// took.
func (m *Metrics) RecordProbeDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.probeDuration.Observe(float64(d.Milliseconds()))
}

// RecordPreconditionEvaluated records one precondition sub-goal evaluation.
func (m *Metrics) RecordPreconditionEvaluated() {
	if m == nil {
		return
	}
	m.preconditionsEvaled.Inc()
}
