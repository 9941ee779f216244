package handler

import (
	"context"
	"net/http"
	"time"

	"bloomfundr-settlement/internal/health"

	"github.com/gin-gonic/gin"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

type RailStatusReader interface {
	Status(ctx context.Context, rail string) (health.RailStatus, error)
}

type HealthHandler struct {
	checks   map[string]Check
	rails    RailStatusReader
	railName string
}

func NewHealthHandler(checks map[string]Check, rails RailStatusReader, railName string) *HealthHandler {
	return &HealthHandler{checks: checks, rails: rails, railName: railName}
}

// Healthz is 503 when any dependency check fails. A degraded rail is
// reported but keeps the service healthy.
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}
	body := gin.H{"status": "ok", "checks": results}
	if status != http.StatusOK {
		body["status"] = "unavailable"
	}
	if h.rails != nil {
		if rs, err := h.rails.Status(ctx, h.railName); err == nil {
			body["rail"] = rs
		}
	}
	c.JSON(status, body)
}
