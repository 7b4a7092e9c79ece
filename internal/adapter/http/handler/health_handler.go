package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler answers liveness and readiness probes. It never
// touches the inference pipeline; modelLoaded is fixed at
// construction since the model and label table load before the
// listener starts and are never unloaded.
type HealthHandler struct {
	modelLoaded bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(modelLoaded bool) *HealthHandler {
	return &HealthHandler{modelLoaded: modelLoaded}
}

// HealthStatus is the health check response
type HealthStatus struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthStatus{
		Status:      "ok",
		ModelLoaded: h.modelLoaded,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.modelLoaded {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "model not loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
