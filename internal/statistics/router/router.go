// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fixthisbug/internal/statistics/handler"
	"github.com/festy23/fixthisbug/internal/statistics/repository"
	"github.com/festy23/fixthisbug/internal/statistics/service"
	submissionRepository "github.com/festy23/fixthisbug/internal/submission/repository"
	subscriberRepository "github.com/festy23/fixthisbug/internal/subscriber/repository"
)

// RegisterRoutes registers statistics module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(
		repo,
		submissionRepository.New(db, logger),
		subscriberRepository.New(db, logger),
		logger,
	)
	h := handler.New(svc, logger)

	r.Group("/api").GET("/statistics", h.GetStatistics)
}
