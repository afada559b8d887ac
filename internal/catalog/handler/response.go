package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/fixthisbug/internal/apperr"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// respondError maps err to its status code. Server-side failures are logged.
func respondError(c *gin.Context, logger *zap.SugaredLogger, op string, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Errorw(op, "error", err, "path", c.FullPath())
	}
	errorResponse(c, status, apperr.Message(err))
}

// queryInt reads a positive integer query parameter; anything else yields 0.
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
