// Package repository provides data access layer for bug submissions.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fixthisbug/internal/apperr"
	submissionModel "github.com/festy23/fixthisbug/internal/submission/model"
)

// Repository defines the interface for submission data access operations.
type Repository interface {
	// Create inserts a new submission.
	Create(ctx context.Context, sub *submissionModel.BugSubmission) error
	// GetByID finds a submission by id.
	GetByID(ctx context.Context, id string) (*submissionModel.BugSubmission, error)
	// SaveReview writes the review fields of sub.
	SaveReview(ctx context.Context, sub *submissionModel.BugSubmission) error
	// List returns one page of submissions, newest first, and the total.
	List(ctx context.Context, q submissionModel.ListQuery) ([]submissionModel.BugSubmission, int64, error)
	// CountByStatus counts submissions per status.
	CountByStatus(ctx context.Context) ([]submissionModel.StatusCount, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new submission repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a new submission.
func (r *repository) Create(ctx context.Context, sub *submissionModel.BugSubmission) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return apperr.Store("failed to create submission", err)
	}
	r.logger.Debugw("submission created", "id", sub.ID)
	return nil
}

// GetByID finds a submission by id.
func (r *repository) GetByID(ctx context.Context, id string) (*submissionModel.BugSubmission, error) {
	var sub submissionModel.BugSubmission
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, submissionModel.ErrSubmissionNotFound
		}
		return nil, apperr.Store("failed to get submission", err)
	}
	return &sub, nil
}

// SaveReview writes the review fields of sub.
func (r *repository) SaveReview(ctx context.Context, sub *submissionModel.BugSubmission) error {
	result := r.db.WithContext(ctx).
		Model(&submissionModel.BugSubmission{}).
		Where("id = ?", sub.ID).
		Updates(map[string]any{
			"status":           sub.Status,
			"reviewed_by":      sub.ReviewedBy,
			"reviewed_at":      sub.ReviewedAt,
			"rejection_reason": sub.RejectionReason,
		})
	if result.Error != nil {
		return apperr.Store("failed to save review", result.Error)
	}
	if result.RowsAffected == 0 {
		return submissionModel.ErrSubmissionNotFound
	}
	return nil
}

// List returns one page of submissions, newest first, and the total.
func (r *repository) List(
	ctx context.Context,
	q submissionModel.ListQuery,
) ([]submissionModel.BugSubmission, int64, error) {
	q.Normalize()

	filtered := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&submissionModel.BugSubmission{})
		if q.Status != "" {
			query = query.Where("status = ?", q.Status)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, apperr.Store("failed to count submissions", err)
	}

	var subs []submissionModel.BugSubmission
	err := filtered().
		Order("created_at DESC").
		Order("id DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&subs).Error
	if err != nil {
		return nil, 0, apperr.Store("failed to list submissions", err)
	}
	if subs == nil {
		subs = []submissionModel.BugSubmission{}
	}
	return subs, total, nil
}

// CountByStatus counts submissions per status.
func (r *repository) CountByStatus(ctx context.Context) ([]submissionModel.StatusCount, error) {
	var rows []submissionModel.StatusCount
	err := r.db.WithContext(ctx).
		Model(&submissionModel.BugSubmission{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Store("failed to count submissions by status", err)
	}
	if rows == nil {
		rows = []submissionModel.StatusCount{}
	}
	return rows, nil
}
