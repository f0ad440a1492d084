package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/svgstore/pkg/logger"
)

// HealthStatus values reported by HealthCheckHandler.
const (
	StatusAlive    = "alive"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
)

// HealthCheck is a readiness probe; a non-nil error means not ready.
type HealthCheck func(ctx context.Context) error

// HealthCheckHandler answers liveness when no checks are given and readiness
// otherwise. The body is {"status": ...}; a failed check yields 503.
func HealthCheckHandler(log *slog.Logger, checks ...HealthCheck) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		status, code := StatusAlive, http.StatusOK
		if len(checks) > 0 {
			status = StatusReady
			for _, check := range checks {
				if err := check(r.Context()); err != nil {
					log.ErrorContext(r.Context(), "readiness check failed",
						logger.Error(err),
						logger.Component("healthcheck"),
					)
					status, code = StatusNotReady, http.StatusServiceUnavailable
					break
				}
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
