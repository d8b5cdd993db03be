package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "textanalyzer"

// Metrics holds the collectors of a single run. A nil *Metrics records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	texts           prometheus.Counter
	tokensStored    prometheus.Counter
	tokensTruncated prometheus.Counter
	capacityHits    prometheus.Counter
	failures        *prometheus.CounterVec
	runDuration     prometheus.Gauge
}

// New registers the run collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		texts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "texts_total",
			Help:      "Texts stored.",
		}),
		tokensStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_stored_total",
			Help:      "Tokens stored.",
		}),
		tokensTruncated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_truncated_total",
			Help:      "Tokens cut to the maximum token length.",
		}),
		capacityHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capacity_hits_total",
			Help:      "Runs that stopped tokenizing at the maximum token count.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Failed runs by pipeline state.",
		}, []string{"state"}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
	}

	m.registry.MustRegister(m.texts, m.tokensStored, m.tokensTruncated, m.capacityHits, m.failures, m.runDuration)
	return m
}

func (m *Metrics) TextStored() {
	if m == nil {
		return
	}
	m.texts.Inc()
}

func (m *Metrics) TokenStored(truncated bool) {
	if m == nil {
		return
	}
	m.tokensStored.Inc()
	if truncated {
		m.tokensTruncated.Inc()
	}
}

func (m *Metrics) CapacityHit() {
	if m == nil {
		return
	}
	m.capacityHits.Inc()
}

func (m *Metrics) Failure(state string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(state).Inc()
}

func (m *Metrics) ObserveRun(d time.Duration) {
	if m == nil {
		return
	}
	m.runDuration.Set(d.Seconds())
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the collectors in the text exposition format, for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Gatherer()); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
