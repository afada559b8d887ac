// Package handler provides HTTP handlers for newsletter endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	subscriberModel "github.com/festy23/fixthisbug/internal/subscriber/model"
	"github.com/festy23/fixthisbug/internal/subscriber/service"
)

// Handler handles HTTP requests for subscriber endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new subscriber handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Subscribe handles POST /api/subscribe request.
// @Summary Subscribe to the newsletter
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param request body subscriberModel.SubscribeRequest true "Email and optional preferences"
// @Success 201 {object} subscriberModel.MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid email or already subscribed"
// @Failure 500 {object} ErrorResponse
// @Router /api/subscribe [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Subscribe(c *gin.Context) {
	var req subscriberModel.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.service.Subscribe(c.Request.Context(), &req); err != nil {
		respondError(c, h.logger, "error subscribing", err)
		return
	}

	c.JSON(http.StatusCreated, subscriberModel.MessageResponse{Message: subscriberModel.MessageSubscribed})
}

// Unsubscribe handles POST /api/unsubscribe request.
// @Summary Unsubscribe from the newsletter
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param request body subscriberModel.UnsubscribeRequest true "Email"
// @Success 200 {object} subscriberModel.MessageResponse
// @Failure 400 {object} ErrorResponse "Email is required"
// @Failure 404 {object} ErrorResponse "Subscriber not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/unsubscribe [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Unsubscribe(c *gin.Context) {
	var req subscriberModel.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.logger, "error unsubscribing", err)
		return
	}

	c.JSON(http.StatusOK, subscriberModel.MessageResponse{Message: subscriberModel.MessageUnsubscribed})
}
