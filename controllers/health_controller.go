package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db           Pinger
	aiConfigured bool
}

func NewHealthController(db Pinger, aiConfigured bool) *HealthController {
	return &HealthController{db: db, aiConfigured: aiConfigured}
}

func (hc *HealthController) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Fitness AI Backend Running Successfully!"})
}

func (hc *HealthController) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := hc.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":        "degraded",
			"database":      err.Error(),
			"ai_configured": hc.aiConfigured,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "ai_configured": hc.aiConfigured})
}
