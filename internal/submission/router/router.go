// Package router provides submission module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fixthisbug/internal/submission/handler"
	"github.com/festy23/fixthisbug/internal/submission/repository"
	"github.com/festy23/fixthisbug/internal/submission/service"
)

// RegisterRoutes registers submission module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	api := r.Group("/api")
	api.POST("/submit-bug", h.Submit)
	api.GET("/bug-submissions", h.List)
	api.PATCH("/bug-submissions/:id", h.Review)
}
