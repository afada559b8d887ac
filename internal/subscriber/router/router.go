// Package router provides subscriber module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fixthisbug/internal/subscriber/handler"
	"github.com/festy23/fixthisbug/internal/subscriber/repository"
	"github.com/festy23/fixthisbug/internal/subscriber/service"
)

// RegisterRoutes registers subscriber module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	api := r.Group("/api")
	api.POST("/subscribe", h.Subscribe)
	api.POST("/unsubscribe", h.Unsubscribe)
}
