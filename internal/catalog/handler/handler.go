// Package handler provides HTTP handlers for catalog endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogModel "github.com/festy23/fixthisbug/internal/catalog/model"
	"github.com/festy23/fixthisbug/internal/catalog/service"
)

// Handler handles HTTP requests for catalog endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new catalog handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListRepositories handles GET /api/repositories request.
// @Summary List active repositories
// @Tags Repositories
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param language query string false "Language slug or all"
// @Param search query string false "Substring of name, description or owner"
// @Param sort query string false "stars, name, owner, language, last_modified, created_at"
// @Param order query string false "asc or desc"
// @Success 200 {object} catalogModel.ListResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/repositories [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListRepositories(c *gin.Context) {
	q := catalogModel.ListQuery{
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Language: c.Query("language"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
	}

	resp, err := h.service.ListRepositories(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, "error listing repositories", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetRepository handles GET /api/repositories/:id request.
// @Summary Get a repository with its issues
// @Tags Repositories
// @Produce json
// @Param id path string true "Repository ID"
// @Success 200 {object} catalogModel.Repository
// @Failure 404 {object} ErrorResponse "Repository not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/repositories/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetRepository(c *gin.Context) {
	repo, err := h.service.GetRepository(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "error getting repository", err)
		return
	}

	c.JSON(http.StatusOK, repo)
}

// Languages handles GET /api/languages request.
// @Summary Count active repositories per language
// @Tags Repositories
// @Produce json
// @Success 200 {array} catalogModel.LanguageCount
// @Failure 500 {object} ErrorResponse
// @Router /api/languages [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Languages(c *gin.Context) {
	langs, err := h.service.Languages(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "error aggregating languages", err)
		return
	}

	c.JSON(http.StatusOK, langs)
}

// UpsertRepository handles POST /api/repositories request.
// @Summary Create or replace a repository keyed by github_id
// @Tags Repositories
// @Accept json
// @Produce json
// @Param request body catalogModel.UpsertRequest true "Repository"
// @Success 201 {object} catalogModel.Repository
// @Failure 400 {object} ErrorResponse "Missing required fields"
// @Failure 409 {object} ErrorResponse "Concurrent modification"
// @Failure 500 {object} ErrorResponse
// @Router /api/repositories [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpsertRepository(c *gin.Context) {
	var req catalogModel.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	repo, _, err := h.service.UpsertRepository(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, "error upserting repository", err)
		return
	}

	c.JSON(http.StatusCreated, repo)
}
