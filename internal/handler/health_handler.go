package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/fakhrymubarak/city-dashboard/internal/config"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one dependency, e.g. a Redis or database ping.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	Checks map[string]HealthCheck
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{Checks: checks}
}

type healthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleHealth returns 200 when every check passes and 503 otherwise.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := healthStatus{Status: "ok", Checks: map[string]string{}}
	statusCode := http.StatusOK
	for name, check := range h.Checks {
		if err := check(ctx); err != nil {
			config.GetLogger().Warnw("Health check failed", "check", name, "error", err)
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			statusCode = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "up"
	}
	writeJSONResponse(w, statusCode, resp)
}
