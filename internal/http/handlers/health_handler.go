package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	environment string
	provider    string
}

func NewHealthHandler(environment, provider string) *HealthHandler {
	return &HealthHandler{environment: environment, provider: provider}
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.environment,
		"provider":    h.provider,
	})
}
