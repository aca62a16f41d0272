package common

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
)

// LoggingMiddleware injects logger into the request context and logs every
// dispatched request with its outcome and duration.
func LoggingMiddleware(logger Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		ctx = WithLogger(ctx, logger)
		name := RequestName(request)

		start := time.Now()
		response, err := next(ctx, request)
		metadata := map[string]interface{}{
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}

		if err != nil {
			metadata["error"] = err.Error()
			logger.Log("ERROR", "request failed", metadata)
			return response, err
		}
		logger.Log("DEBUG", "request handled", metadata)
		return response, nil
	}
}

// RequestName returns the bare type name of a request, e.g.
// "*commands.SaveBuildCommand" becomes "SaveBuildCommand"
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}
