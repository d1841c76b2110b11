package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "grovesim"
	// Subsystem for sweep metrics
	subsystem = "sweep"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalSweepCollector is set by SetGlobalSweepCollector() when metrics are enabled
	globalSweepCollector SweepMetricsRecorder
)

// SweepMetricsRecorder records sweep progress. The sweep runner talks to
// this interface so it stays unaware of Prometheus.
type SweepMetricsRecorder interface {
	RecordIterations(n int)
	RecordPoint(status string, duration time.Duration)
	WorkerStarted()
	WorkerFinished()
}

// InitRegistry initializes the Prometheus registry.
// Should be called once at startup if metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalSweepCollector sets the global sweep metrics collector
func SetGlobalSweepCollector(collector SweepMetricsRecorder) {
	globalSweepCollector = collector
}

// GlobalSweepRecorder returns the global sweep recorder, or a no-op
// recorder when metrics are disabled
func GlobalSweepRecorder() SweepMetricsRecorder {
	if globalSweepCollector == nil {
		return NoopRecorder{}
	}
	return globalSweepCollector
}

// NoopRecorder discards every observation
type NoopRecorder struct{}

func (NoopRecorder) RecordIterations(int)              {}
func (NoopRecorder) RecordPoint(string, time.Duration) {}
func (NoopRecorder) WorkerStarted()                    {}
func (NoopRecorder) WorkerFinished()                   {}
