// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fixthisbug/internal/database/database"
)

const pingTimeout = 5 * time.Second

// Database states reported by Check.
const (
	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)

// Handler handles health check requests.
type Handler struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New creates a new health handler instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Response represents health check response.
type Response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

// Check handles GET /api/health request.
//
//	@Summary		Service health
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	Response
//	@Failure		503	{object}	Response
//	@Router			/health [get]
//
//nolint:godot // swagger annotations
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	resp := Response{
		Status:    "OK",
		Timestamp: h.now().UTC(),
		Database:  DatabaseConnected,
	}

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		resp.Database = DatabaseDisconnected
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterRoutes registers the health endpoint.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	h := New(db, logger)
	r.Group("/api").GET("/health", h.Check)
}
