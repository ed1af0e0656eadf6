// Package metrics exposes prometheus counters for form edits, submissions,
// draft restores and persistence calls.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/store"
)

// Submission and restore outcome labels.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"

	RestoreRestored = "restored"
	RestoreEmpty    = "empty"
	RestoreDiscard  = "discarded"
)

// Metrics tracks form activity. Each instance owns its registry so several
// controllers (and tests) can coexist in one process.
type Metrics struct {
	FieldChanges  *prometheus.CounterVec
	Submissions   *prometheus.CounterVec
	Restores      *prometheus.CounterVec
	StoreOps      *prometheus.CounterVec
	StoreDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a Metrics instance with every collector registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		FieldChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regform_field_changes_total",
			Help: "Total number of accepted field edits",
		}, []string{"field"}),
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regform_submissions_total",
			Help: "Submit attempts by outcome (success, failure, rejected)",
		}, []string{"result"}),
		Restores: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regform_draft_restores_total",
			Help: "Draft restore attempts on load by outcome",
		}, []string{"result"}),
		StoreOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regform_store_operations_total",
			Help: "Persistence calls by operation, key and result",
		}, []string{"op", "key", "result"}),
		StoreDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "regform_store_operation_duration_seconds",
			Help:    "Duration of persistence calls",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"op"}),
		registry: reg,
	}
}

// Registry exposes the underlying registry as a gatherer.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile dumps the current values in the text exposition format, for
// node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// IncrementFieldChange records an accepted edit.
func (m *Metrics) IncrementFieldChange(field model.FieldName) {
	if m == nil {
		return
	}
	m.FieldChanges.WithLabelValues(string(field)).Inc()
}

// IncrementSubmission records a submit attempt outcome.
func (m *Metrics) IncrementSubmission(result string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(result).Inc()
}

// IncrementRestore records the outcome of the restore on load.
func (m *Metrics) IncrementRestore(result string) {
	if m == nil {
		return
	}
	m.Restores.WithLabelValues(result).Inc()
}

// InstrumentStore wraps s so every call is counted and timed.
func (m *Metrics) InstrumentStore(s store.Store) store.Store {
	if m == nil || s == nil {
		return s
	}
	return &instrumentedStore{next: s, metrics: m}
}

type instrumentedStore struct {
	next    store.Store
	metrics *Metrics
}

func (s *instrumentedStore) Read(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, ok, err := s.next.Read(ctx, key)
	s.observe("read", key, start, err)
	return value, ok, err
}

func (s *instrumentedStore) Write(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.next.Write(ctx, key, value)
	s.observe("write", key, start, err)
	return err
}

func (s *instrumentedStore) observe(op, key string, start time.Time, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	s.metrics.StoreOps.WithLabelValues(op, key, result).Inc()
	s.metrics.StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
