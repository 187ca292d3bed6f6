package handler

import (
	"net/http"
	"time"

	"github.com/Pratham6392/shipment/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// HealthHandler serves liveness endpoints
type HealthHandler struct {
	engine string
	now    func() time.Time
}

// NewHealthHandler creates a health handler reporting the configured engine
func NewHealthHandler(engine string) *HealthHandler {
	return &HealthHandler{
		engine: engine,
		now:    time.Now,
	}
}

// Health reports the service is up
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status: "healthy",
		Time:   h.now().UTC(),
		Engine: h.engine,
	})
}

// Ping answers with pong
func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PingResponse{Message: "pong"})
}
