package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nooko-hq/tally/pkg/batch"
	"nooko-hq/tally/pkg/config"
)

// Collector tracks processing metrics.
//
// Metrics:
//   - tally_records_total: Processed records by outcome
//   - tally_cost_total: Total estimated cost in USD by provider and model
//   - tally_cost_per_record: Cost distribution per record (histogram)
//   - tally_batches_total: Number of processed batches
type Collector struct {
	registry *prometheus.Registry

	recordsTotal  *prometheus.CounterVec
	costTotal     *prometheus.CounterVec
	costPerRecord *prometheus.HistogramVec
	batchesTotal  prometheus.Counter
}

var _ batch.Recorder = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with a
// fresh registry.
func NewCollector(cfg config.MetricsConfig) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,

		recordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "records_total",
				Help:      "Processed usage records by outcome",
			},
			[]string{"outcome"},
		),

		costTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "cost_total",
				Help:      "Total estimated cost in USD by provider and model",
			},
			[]string{"provider", "model"},
		),

		costPerRecord: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "cost_per_record",
				Help:      "Estimated cost distribution per record in USD",
				// Cost buckets: $0.0001 to $10 (spans cached-input
				// micro-costs up to long-context batch jobs)
				Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
			},
			[]string{"provider", "model"},
		),

		batchesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "batches_total",
				Help:      "Number of processed batches",
			},
		),
	}

	registry.MustRegister(
		c.recordsTotal,
		c.costTotal,
		c.costPerRecord,
		c.batchesTotal,
	)

	return c
}

// RecordOutcome counts a processed record by outcome.
func (c *Collector) RecordOutcome(outcome batch.Outcome) {
	c.recordsTotal.WithLabelValues(string(outcome)).Inc()
}

// RecordCost records the estimated cost of a single priced record.
func (c *Collector) RecordCost(provider, model string, usd float64) {
	if usd < 0 {
		return
	}
	c.costTotal.WithLabelValues(provider, model).Add(usd)
	c.costPerRecord.WithLabelValues(provider, model).Observe(usd)
}

// RecordBatch counts a processed batch.
func (c *Collector) RecordBatch() {
	c.batchesTotal.Inc()
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler serving the metrics exposition.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
