package handlers

import (
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	logger  *zap.Logger
	started time.Time
	ready   atomic.Bool
}

// NewHealthHandler creates a health handler. Readiness starts false until
// SetReady is called.
func NewHealthHandler(logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{
		logger:  logger.With(zap.String("component", "health_handler")),
		started: time.Now(),
	}
}

// SetReady flips the readiness state.
func (h *HealthHandler) SetReady(ready bool) {
	h.ready.Store(ready)
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}

// Ready handles GET /ready.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		WriteErrorMessage(w, http.StatusServiceUnavailable, "NOT_READY", "service is starting")
		return
	}
	WriteSuccess(w, map[string]any{"status": "ready"})
}
