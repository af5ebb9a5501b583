package rest

import (
	"context"
	"log/slog"
	"net/http"
)

// HealthCheck reports whether a dependency of the server is usable.
type HealthCheck func(ctx context.Context) error

type PingHandler interface {
	PingHandler(w http.ResponseWriter, r *http.Request)
}

type pingHandler struct {
	logger *slog.Logger
	checks map[string]HealthCheck
}

// NewPingHandler answers pong while every check passes. Checks are keyed by
// the name reported when they fail.
func NewPingHandler(logger *slog.Logger, checks map[string]HealthCheck) PingHandler {
	return &pingHandler{
		logger: logger.With("component", "ping"),
		checks: checks,
	}
}

func (that *pingHandler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	for name, check := range that.checks {
		if err := check(r.Context()); err != nil {
			that.logger.Warn("health check failed", "check", name, "error", err)
			http.Error(w, name+" unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}
