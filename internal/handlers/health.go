package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db           Pinger
	aiConfigured bool
}

func NewHealthHandler(db Pinger, aiConfigured bool) *HealthHandler {
	return &HealthHandler{db: db, aiConfigured: aiConfigured}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code, database := "ok", http.StatusOK, "MongoDB connected"
	if err := h.db.Ping(ctx); err != nil {
		status, code, database = "degraded", http.StatusServiceUnavailable, "MongoDB unreachable"
	}

	c.JSON(code, gin.H{
		"status":       status,
		"message":      "AI Form Builder API is running",
		"database":     database,
		"aiConfigured": h.aiConfigured,
	})
}
