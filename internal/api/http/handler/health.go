package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/premium-server/internal/api/http/middleware"
	"github.com/dtroode/premium-server/internal/logger"
	"github.com/dtroode/premium-server/internal/model"
)

const healthTimeout = 2 * time.Second

// Health reports whether the server and its storage are reachable.
type Health struct {
	checks map[string]model.HealthChecker
	logger *logger.Logger
}

// NewHealth creates a health handler probing the named dependencies.
func NewHealth(checks map[string]model.HealthChecker, logger *logger.Logger) *Health {
	return &Health{checks: checks, logger: logger}
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok"}
	status := http.StatusOK

	for name, check := range h.checks {
		if resp.Checks == nil {
			resp.Checks = make(map[string]string, len(h.checks))
		}
		if err := check.Ping(ctx); err != nil {
			h.logger.Warn("Health handler: dependency unavailable",
				"dependency", name,
				"error", err.Error())
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	middleware.JSONResponse(w, status, resp)
}
