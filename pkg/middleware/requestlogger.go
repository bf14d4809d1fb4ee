package middleware

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/LocalBizGo/pkg/logger"
)

// RequestLogger stores a logger enriched with correlation_id and trace ids in
// the request context for logger.FromContext. Mount it after RequestLogging
// and Tracing; Auth adds user_id to it later in the chain.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
