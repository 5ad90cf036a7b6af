package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/FakeOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/FakeOS/backend/internal/shared/types"
)

// Version is reported by the root endpoint
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	factory  *desktop.Factory
	sessions *desktop.Registry
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set
func NewHandlers(factory *desktop.Factory, sessions *desktop.Registry, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		factory:  factory,
		sessions: sessions,
		metrics:  metrics,
	}
}

// Root describes the service
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, types.ServiceInfo{
		Service: "FakeOS Desktop Service (Go)",
		Version: Version,
		Status:  "online",
		Endpoints: []string{
			"GET /health",
			"GET /profile",
			"GET /sessions",
			"GET /sessions/:id",
			"GET /metrics",
			"GET /metrics/json",
			"GET /desktop (WebSocket)",
		},
	})
}

// Health reports live session counts
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:      "healthy",
		Sessions:    h.sessions.Count(),
		MaxSessions: h.sessions.Max(),
		Profile:     h.factory.Profile().Name,
		Metrics:     h.metrics.Snapshot(),
	})
}

// Profile returns the seed profile new sessions start from
func (h *Handlers) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, h.factory.Profile())
}

// SessionSummary is one entry of the session list
type SessionSummary struct {
	ID         string        `json:"id"`
	Phase      desktop.Phase `json:"phase"`
	Generation uint64        `json:"generation"`
}

// ListSessions lists live desktop sessions
func (h *Handlers) ListSessions(c *gin.Context) {
	ids := h.sessions.IDs()
	list := make([]SessionSummary, 0, len(ids))
	for _, id := range ids {
		run, ok := h.sessions.Get(id)
		if !ok {
			continue // Closed since IDs was taken
		}
		snap := run.Latest()
		list = append(list, SessionSummary{ID: id, Phase: snap.Phase, Generation: snap.Generation})
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": list,
		"count":    len(list),
	})
}

// GetSession returns the latest snapshot of one session
func (h *Handlers) GetSession(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	run, ok := h.sessions.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, run.Latest())
}
