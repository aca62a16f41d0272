package metrics

import (
	"context"
	"time"

	"github.com/cmmcleod/coriolis-sub002/internal/application/common"
	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
)

// PrometheusMiddleware records the duration and outcome of every request,
// labelled by its bare type name (see common.RequestName). A nil collector
// passes requests straight through.
func PrometheusMiddleware(collector *RequestMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordRequest(common.RequestName(request), time.Since(start).Seconds(), err == nil)

		return response, err
	}
}
