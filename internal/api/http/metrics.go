package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/FakeOS/backend/internal/infrastructure/monitoring"
)

// MetricsSnapshot is the JSON view of the server's metrics
type MetricsSnapshot struct {
	Timestamp time.Time           `json:"timestamp"`
	Backend   monitoring.Snapshot `json:"backend"`
	Summary   MetricsSummary      `json:"summary"`
}

// MetricsSummary provides high-level metrics
type MetricsSummary struct {
	TotalRequests    int64   `json:"total_requests"`
	AverageLatencyMs float64 `json:"average_latency_ms"`
	ErrorRate        float64 `json:"error_rate"`
	ActiveSessions   int     `json:"active_sessions"`
	SessionCapacity  float64 `json:"session_capacity"` // Fraction in use, 0 when unlimited
	UptimeSeconds    float64 `json:"uptime_seconds"`
}

// GetMetrics returns the metrics snapshot as JSON
func (h *Handlers) GetMetrics(c *gin.Context) {
	snap := h.metrics.Snapshot()
	c.JSON(http.StatusOK, MetricsSnapshot{
		Timestamp: time.Now(),
		Backend:   snap,
		Summary:   h.summarize(snap),
	})
}

// summarize computes high-level summary metrics
func (h *Handlers) summarize(snap monitoring.Snapshot) MetricsSummary {
	var errorRate float64
	if snap.TotalRequests > 0 {
		errorRate = float64(snap.TotalErrors) / float64(snap.TotalRequests)
	}

	active := h.sessions.Count()
	var capacity float64
	if limit := h.sessions.Max(); limit > 0 {
		capacity = float64(active) / float64(limit)
	}

	return MetricsSummary{
		TotalRequests:    snap.TotalRequests,
		AverageLatencyMs: snap.AvgLatencyMS,
		ErrorRate:        errorRate,
		ActiveSessions:   active,
		SessionCapacity:  capacity,
		UptimeSeconds:    snap.UptimeSeconds,
	}
}
