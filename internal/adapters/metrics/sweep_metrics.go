package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Point statuses used as the status label of points_total
const (
	PointStatusCompleted = "completed"
	PointStatusFailed    = "failed"
	PointStatusCancelled = "cancelled"
)

// SweepMetricsCollector exposes sweep progress
type SweepMetricsCollector struct {
	iterationsTotal prometheus.Counter
	pointsTotal     *prometheus.CounterVec
	pointDuration   prometheus.Histogram
	activeWorkers   prometheus.Gauge
}

// NewSweepMetricsCollector creates a new sweep metrics collector
func NewSweepMetricsCollector() *SweepMetricsCollector {
	return &SweepMetricsCollector{
		iterationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "iterations_total",
				Help:      "Total number of simulated grove iterations",
			},
		),
		pointsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "points_total",
				Help:      "Total number of weight-triple points by outcome",
			},
			[]string{"status"},
		),
		pointDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "point_duration_seconds",
				Help:      "Wall time spent simulating one weight-triple point",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
		activeWorkers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "active_workers",
				Help:      "Number of sweep workers currently simulating",
			},
		),
	}
}

// Register registers all sweep metrics with the Prometheus registry
func (c *SweepMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.iterationsTotal,
		c.pointsTotal,
		c.pointDuration,
		c.activeWorkers,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordIterations adds n finished iterations
func (c *SweepMetricsCollector) RecordIterations(n int) {
	c.iterationsTotal.Add(float64(n))
}

// RecordPoint records the outcome of one weight-triple point
func (c *SweepMetricsCollector) RecordPoint(status string, duration time.Duration) {
	c.pointsTotal.WithLabelValues(status).Inc()
	if status == PointStatusCompleted {
		c.pointDuration.Observe(duration.Seconds())
	}
}

func (c *SweepMetricsCollector) WorkerStarted()  { c.activeWorkers.Inc() }
func (c *SweepMetricsCollector) WorkerFinished() { c.activeWorkers.Dec() }
