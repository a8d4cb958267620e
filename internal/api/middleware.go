package api

import (
	"log/slog"
	"net/http"
	"time"
)

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapper, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapper.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if wrapper.statusCode >= http.StatusInternalServerError {
				logger.ErrorContext(r.Context(), "api_request", attrs...)
				return
			}
			logger.InfoContext(r.Context(), "api_request", attrs...)
		})
	}
}
