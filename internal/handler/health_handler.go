package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/store_api/internal/utils"
)

var startTime = time.Now()

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// PingContext calls f.
func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// HealthHandler provides health endpoint.
type HealthHandler struct {
	db    Pinger
	redis Pinger
}

// NewHealthHandler creates a new HealthHandler. redis may be nil when the
// cache is disabled.
func NewHealthHandler(db Pinger, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// GetHealth responds with service, database and cache status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	healthy := true
	dbStatus := "connected"
	if err := h.db.PingContext(ctx); err != nil {
		dbStatus = "disconnected"
		healthy = false
	}

	redisStatus := "disabled"
	if h.redis != nil {
		redisStatus = "connected"
		if err := h.redis.PingContext(ctx); err != nil {
			// The catalog works without its cache.
			redisStatus = "disconnected"
		}
	}

	data := gin.H{
		"status":   "healthy",
		"version":  "1.0.0",
		"uptime":   int(time.Since(startTime).Seconds()),
		"database": gin.H{"status": dbStatus},
		"redis":    gin.H{"status": redisStatus},
	}
	if !healthy {
		data["status"] = "unhealthy"
		utils.ErrorWithData(c, http.StatusServiceUnavailable, "UNHEALTHY", "Database is unreachable", data)
		return
	}
	utils.Success(c, http.StatusOK, "Service is healthy", data)
}
