// Package repository provides data access layer for statistics module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fixthisbug/internal/apperr"
	catalogModel "github.com/festy23/fixthisbug/internal/catalog/model"
	"github.com/festy23/fixthisbug/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetCatalogStatistics aggregates active repositories and their issues.
	GetCatalogStatistics(ctx context.Context) (*model.CatalogStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetCatalogStatistics aggregates active repositories and their issues.
func (r *repository) GetCatalogStatistics(ctx context.Context) (*model.CatalogStatistics, error) {
	r.logger.Debugw("GetCatalogStatistics called")

	var result struct {
		ActiveRepositories int64 `gorm:"column:active_repositories"`
		Languages          int64 `gorm:"column:languages"`
		Issues             int64 `gorm:"column:issues"`
	}

	err := r.db.WithContext(ctx).
		Model(&catalogModel.Repository{}).
		Select(`
			COUNT(*) as active_repositories,
			COUNT(DISTINCT language) as languages,
			COALESCE(SUM(` + r.arrayLength("issues") + `), 0) as issues
		`).
		Where("is_active = ?", true).
		Scan(&result).Error
	if err != nil {
		return nil, apperr.Store("failed to aggregate catalog statistics", err)
	}

	stats := &model.CatalogStatistics{
		ActiveRepositories: result.ActiveRepositories,
		Languages:          result.Languages,
		Issues:             result.Issues,
	}

	r.logger.Debugw("GetCatalogStatistics completed", "repositories", stats.ActiveRepositories, "issues", stats.Issues)
	return stats, nil
}

// arrayLength returns the dialect's JSON array length expression for column.
func (r *repository) arrayLength(column string) string {
	if r.db.Dialector.Name() == "postgres" {
		return "jsonb_array_length(" + column + ")"
	}
	return "json_array_length(" + column + ")"
}
