package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/fixthisbug/internal/apperr"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondError(c *gin.Context, logger *zap.SugaredLogger, op string, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Errorw(op, "error", err, "path", c.FullPath())
	}
	c.JSON(status, ErrorResponse{Error: apperr.Message(err)})
}
