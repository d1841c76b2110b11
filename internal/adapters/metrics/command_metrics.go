package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

// Request outcomes used as the outcome label
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeCanceled = "canceled"
	OutcomeError    = "error"
)

// CommandMetricsCollector tracks mediator requests: how long they take,
// how they end and how many are running right now.
type CommandMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	inFlight        *prometheus.GaugeVec
}

func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		// sweeps run for minutes, single iterations for microseconds
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Mediator request duration by request type and outcome",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120, 600},
			},
			[]string{"request", "outcome"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Mediator requests handled by request type and outcome",
			},
			[]string{"request", "outcome"},
		),
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "requests_in_flight",
				Help:      "Mediator requests currently being handled",
			},
			[]string{"request"},
		),
	}
}

// Register adds the collectors to Registry. No-op while metrics are disabled.
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	for _, metric := range []prometheus.Collector{c.requestDuration, c.requestsTotal, c.inFlight} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RequestStarted marks a request as running and returns the func that
// records its completion.
func (c *CommandMetricsCollector) RequestStarted(request string) func(seconds float64, err error) {
	gauge := c.inFlight.WithLabelValues(request)
	gauge.Inc()

	return func(seconds float64, err error) {
		gauge.Dec()
		outcome := Outcome(err)
		c.requestDuration.WithLabelValues(request, outcome).Observe(seconds)
		c.requestsTotal.WithLabelValues(request, outcome).Inc()
	}
}

// Outcome classifies a handler error into an outcome label.
func Outcome(err error) string {
	var verr *shared.ValidationError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &verr):
		return OutcomeInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}
