// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/fixthisbug/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetStatistics handles GET /api/statistics request.
// @Summary Get catalog, moderation and newsletter counters
// @Tags Statistics
// @Produce json
// @Success 200 {object} model.StatisticsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/statistics [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetStatistics(c *gin.Context) {
	resp, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "error getting statistics", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
