package metrics

import (
	"context"
	"time"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
)

// PrometheusMiddleware records every request dispatched through the
// mediator, labelled by the request's type name (e.g. "RunSweepCommand").
func PrometheusMiddleware(collector *CommandMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		done := collector.RequestStarted(common.RequestName(request))
		start := time.Now()
		response, err := next(ctx, request)
		done(time.Since(start).Seconds(), err)

		return response, err
	}
}
