package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports service liveness plus audit-store reachability. A failed
// store ping degrades the report but keeps 200: audit unavailability is not
// fatal to the serving path.
func (h *Handlers) Health(c *gin.Context) {
	storeStatus := "up"
	if sqlDB, err := h.store.DB().DB(); err != nil {
		storeStatus = "down"
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		storeStatus = "down"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "soma-api",
		"store":     storeStatus,
		"timestamp": time.Now().Unix(),
	})
}

// Root describes the service.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "soma-api",
		"endpoints": gin.H{
			"soma":    "GET /soma/:a/:b?user_id=<id>",
			"health":  "GET /health",
			"metrics": "GET /metrics",
		},
	})
}
