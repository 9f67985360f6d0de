// Package metrics exposes Prometheus metrics for the cost engine.
//
// The Collector tracks per-outcome record counters and per-model cost
// totals and distributions. It satisfies the batch.Recorder interface
// so the processor can report without depending on Prometheus.
package metrics
