// Package router provides catalog module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fixthisbug/internal/catalog/handler"
	"github.com/festy23/fixthisbug/internal/catalog/repository"
	"github.com/festy23/fixthisbug/internal/catalog/service"
)

// RegisterRoutes registers catalog module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	api := r.Group("/api")
	api.GET("/repositories", h.ListRepositories)
	api.GET("/repositories/:id", h.GetRepository)
	api.POST("/repositories", h.UpsertRepository)
	api.GET("/languages", h.Languages)
}
