// controllers/cron.go
package controllers

import (
	"net/http"

	"aquacare-backend/services"

	"github.com/gin-gonic/gin"
)

// CronController exposes the orchestrator to an external scheduler.
type CronController struct {
	Orchestrator *services.Orchestrator
}

// Run executes one automated messaging run and returns its summary
func (cc *CronController) Run(c *gin.Context) {
	summary := cc.Orchestrator.Run(c.Request.Context())
	c.JSON(http.StatusOK, summary)
}
