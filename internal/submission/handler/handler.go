// Package handler provides HTTP handlers for bug submission endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	submissionModel "github.com/festy23/fixthisbug/internal/submission/model"
	"github.com/festy23/fixthisbug/internal/submission/service"
)

// Handler handles HTTP requests for submission endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new submission handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Submit handles POST /api/submit-bug request.
// @Summary Submit a bug for moderation
// @Tags Submissions
// @Accept json
// @Produce json
// @Param request body submissionModel.SubmitRequest true "Bug report"
// @Success 201 {object} submissionModel.SubmitResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 500 {object} ErrorResponse
// @Router /api/submit-bug [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Submit(c *gin.Context) {
	var req submissionModel.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, "error submitting bug", err)
		return
	}

	c.JSON(http.StatusCreated, submissionModel.SubmitResponse{
		Message:      submissionModel.MessageSubmitted,
		SubmissionID: sub.ID,
	})
}

// List handles GET /api/bug-submissions request.
// @Summary List submissions, newest first
// @Tags Submissions
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param status query string false "pending, approved, rejected or all"
// @Success 200 {object} submissionModel.ListResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/bug-submissions [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) List(c *gin.Context) {
	q := submissionModel.ListQuery{
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
		Status: c.Query("status"),
	}

	resp, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, "error listing submissions", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Review handles PATCH /api/bug-submissions/:id request.
// @Summary Approve or reject a submission
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body submissionModel.ReviewRequest true "Decision"
// @Success 200 {object} submissionModel.ReviewResponse
// @Failure 400 {object} ErrorResponse "Invalid status"
// @Failure 404 {object} ErrorResponse "Submission not found"
// @Failure 409 {object} ErrorResponse "Concurrent modification"
// @Failure 500 {object} ErrorResponse
// @Router /api/bug-submissions/{id} [patch] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Review(c *gin.Context) {
	// A body without a readable status fails the same way as a bad status.
	var req submissionModel.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "error reviewing submission", submissionModel.ErrInvalidStatus)
		return
	}

	sub, err := h.service.Review(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, "error reviewing submission", err)
		return
	}

	c.JSON(http.StatusOK, submissionModel.ReviewResponse{
		Message: submissionModel.ReviewMessage(sub.Status),
		Status:  sub.Status,
	})
}
