package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusforge/timetable/pkg/metrics"
)

// MetricsHandler exposes the Prometheus collectors of pkg/metrics.
type MetricsHandler struct {
	recorder *metrics.Recorder
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(rec *metrics.Recorder) *MetricsHandler {
	return &MetricsHandler{recorder: rec}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.recorder == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.recorder.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for readiness/liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
