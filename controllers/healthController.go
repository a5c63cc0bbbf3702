package controllers

import (
	"net/http"
	"time"

	"nagarseva-be/config"

	"github.com/gin-gonic/gin"
)

// HealthController reports process and storage state.
type HealthController struct {
	storageMode string
	startedAt   time.Time
}

// NewHealthController records the storage mode the server booted with.
func NewHealthController(storageMode string) *HealthController {
	return &HealthController{storageMode: storageMode, startedAt: time.Now()}
}

// Health reports process status and storage connectivity.
func (ctrl *HealthController) Health(c *gin.Context) {
	redisState := "unavailable"
	if config.RedisClient != nil {
		redisState = "connected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"storage": ctrl.storageMode,
		"redis":   redisState,
		"uptime":  time.Since(ctrl.startedAt).Round(time.Second).String(),
	})
}
