package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors for the dialog service. A nil
// *Metrics is valid and records nothing, so instrumentation stays optional.
type Metrics struct {
	turns        *prometheus.CounterVec
	turnDuration prometheus.Histogram
	fallbacks    *prometheus.CounterVec
}

// New registers the collectors with reg and returns the handle.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		turns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "concierge",
			Name:      "dialog_turns_total",
			Help:      "Dialog turns processed, labeled by the step that handled them.",
		}, []string{"step"}),
		turnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "concierge",
			Name:      "dialog_turn_duration_seconds",
			Help:      "Wall time of one whole turn (lock, transition, compose, save).",
			Buckets:   prometheus.DefBuckets,
		}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "concierge",
			Name:      "composer_fallbacks_total",
			Help:      "Times generated text was discarded for the deterministic fallback.",
		}, []string{"reason"}),
	}
}

// ObserveTurn records one completed turn.
func (m *Metrics) ObserveTurn(step string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(step).Inc()
	m.turnDuration.Observe(elapsed.Seconds())
}

// IncFallback counts a discarded generation.
func (m *Metrics) IncFallback(reason string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(reason).Inc()
}
