// Package telemetry exposes Prometheus metrics for plugin composition and
// table pipeline runs. A disabled Metrics value is a safe no-op.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config controls metrics collection.
type Config struct {
	Enabled   bool
	Namespace string
	Buckets   []float64
}

// DefaultConfig returns an enabled configuration under the "tabular" namespace.
func DefaultConfig() Config {
	return Config{Enabled: true, Namespace: "tabular"}
}

// Metrics provides Prometheus metrics for the engine and the table pipeline.
type Metrics struct {
	config Config

	compositions *prometheus.CounterVec
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter

	runs        *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	stageErrors *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates a metrics collector. A disabled config yields a no-op value.
func NewMetrics(cfg Config) *Metrics {
	if !cfg.Enabled {
		return &Metrics{config: cfg}
	}

	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	registry := prometheus.NewRegistry()
	m := &Metrics{
		config:   cfg,
		registry: registry,

		compositions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "compositions_total",
				Help:      "Total number of plugin sets composed into pipelines",
			},
			[]string{"validated"},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "cache_hits_total",
				Help:      "Composed pipeline lookups served from cache",
			},
		),
		cacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "cache_misses_total",
				Help:      "Composed pipeline lookups that required composition",
			},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "runs_total",
				Help:      "Table model pipeline runs by outcome",
			},
			[]string{"status"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of table model pipeline runs",
				Buckets:   buckets,
			},
			[]string{"status"},
		),
		stageErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "stage_errors_total",
				Help:      "Execution errors raised by plugin implementations, by stage",
			},
			[]string{"stage"},
		),
	}

	registry.MustRegister(
		m.compositions,
		m.cacheHits,
		m.cacheMisses,
		m.runs,
		m.runDuration,
		m.stageErrors,
	)

	return m
}

// Enabled reports whether metrics are being collected.
func (m *Metrics) Enabled() bool {
	return m != nil && m.registry != nil
}

// Registry exposes the underlying registry, or nil when disabled.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordComposition counts one composition of a plugin set.
func (m *Metrics) RecordComposition(validated bool) {
	if !m.Enabled() {
		return
	}
	label := "false"
	if validated {
		label = "true"
	}
	m.compositions.WithLabelValues(label).Inc()
}

// RecordCacheLookup counts a pipeline cache hit or miss.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if !m.Enabled() {
		return
	}
	if hit {
		m.cacheHits.Inc()
		return
	}
	m.cacheMisses.Inc()
}

// RecordRun records a completed pipeline run with its status and duration.
func (m *Metrics) RecordRun(status string, duration time.Duration) {
	if !m.Enabled() {
		return
	}
	m.runs.WithLabelValues(status).Inc()
	m.runDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordStageError counts an execution error raised during the named stage.
func (m *Metrics) RecordStageError(stage string) {
	if !m.Enabled() {
		return
	}
	m.stageErrors.WithLabelValues(stage).Inc()
}

// WriteTextfile dumps the registry in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if !m.Enabled() {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
