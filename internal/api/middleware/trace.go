package middleware

import (
	"net/http"

	"github.com/phrazzld/coursehub-api/internal/api/shared"
	"github.com/phrazzld/coursehub-api/internal/platform/logger"
)

// TraceMiddleware assigns a trace ID to each request and stores a logger
// tagged with it in the request context. Apply it early in the chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		log := logger.FromContext(ctx).With("trace_id", shared.GetTraceID(ctx))
		log.Debug("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)

		next.ServeHTTP(w, r.WithContext(logger.WithLogger(ctx, log)))
	})
}
