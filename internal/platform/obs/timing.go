// Package obs holds small observability helpers shared across packages.
package obs

import (
	"context"
	"log/slog"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Time starts timing the operation name and returns a function that logs its
// duration. Call it deferred with a pointer to the named error result:
//
//	defer obs.Time(ctx, "planner.create_trip")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := chimiddleware.GetReqID(ctx)

	return func(errp *error) {
		attrs := []any{
			"op", name,
			"dur_ms", time.Since(start).Milliseconds(),
		}
		if reqID != "" {
			attrs = append(attrs, "request_id", reqID)
		}

		if errp != nil && *errp != nil {
			slog.WarnContext(ctx, "operation failed", append(attrs, "error", *errp)...)
			return
		}
		slog.DebugContext(ctx, "operation complete", attrs...)
	}
}
