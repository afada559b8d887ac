// Package repository provides data access layer for subscribers.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fixthisbug/internal/apperr"
	subscriberModel "github.com/festy23/fixthisbug/internal/subscriber/model"
)

// Repository defines the interface for subscriber data access operations.
type Repository interface {
	// GetByEmail finds a subscriber by email.
	GetByEmail(ctx context.Context, email string) (*subscriberModel.Subscriber, error)
	// Create inserts a new subscriber.
	Create(ctx context.Context, sub *subscriberModel.Subscriber) error
	// Reactivate marks an inactive subscriber active with sub's preferences.
	// It fails with ErrSubscriberChanged when the row is no longer inactive.
	Reactivate(ctx context.Context, sub *subscriberModel.Subscriber) error
	// Deactivate marks the subscriber inactive.
	Deactivate(ctx context.Context, email string) error
	// CountActive returns the number of active subscribers.
	CountActive(ctx context.Context) (int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new subscriber repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetByEmail finds a subscriber by email.
func (r *repository) GetByEmail(ctx context.Context, email string) (*subscriberModel.Subscriber, error) {
	var sub subscriberModel.Subscriber
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscriberModel.ErrSubscriberNotFound
		}
		return nil, apperr.Store("failed to get subscriber", err)
	}
	return &sub, nil
}

// Create inserts a new subscriber.
func (r *repository) Create(ctx context.Context, sub *subscriberModel.Subscriber) error {
	if sub.Preferences.Languages == nil {
		sub.Preferences.Languages = []string{}
	}
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		if isDuplicateError(err) {
			return subscriberModel.ErrDuplicateEmail
		}
		return apperr.Store("failed to create subscriber", err)
	}
	r.logger.Debugw("subscriber created", "email", sub.Email)
	return nil
}

// Reactivate marks an inactive subscriber active with sub's preferences.
func (r *repository) Reactivate(ctx context.Context, sub *subscriberModel.Subscriber) error {
	if sub.Preferences.Languages == nil {
		sub.Preferences.Languages = []string{}
	}
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&subscriberModel.Subscriber{}).
		Where("email = ? AND is_active = ?", sub.Email, false).
		Updates(map[string]any{
			"is_active":                   true,
			"pref_languages":              sub.Preferences.Languages,
			"pref_notification_frequency": sub.Preferences.NotificationFrequency,
			"updated_at":                  now,
		})
	if result.Error != nil {
		return apperr.Store("failed to reactivate subscriber", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByEmail(ctx, sub.Email); err != nil {
			return err
		}
		return subscriberModel.ErrSubscriberChanged
	}
	sub.IsActive = true
	sub.UpdatedAt = now
	return nil
}

// Deactivate marks the subscriber inactive.
func (r *repository) Deactivate(ctx context.Context, email string) error {
	result := r.db.WithContext(ctx).
		Model(&subscriberModel.Subscriber{}).
		Where("email = ?", email).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return apperr.Store("failed to deactivate subscriber", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscriberModel.ErrSubscriberNotFound
	}
	return nil
}

// CountActive returns the number of active subscribers.
func (r *repository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&subscriberModel.Subscriber{}).
		Where("is_active = ?", true).
		Count(&n).Error
	if err != nil {
		return 0, apperr.Store("failed to count subscribers", err)
	}
	return n, nil
}

// isDuplicateError checks if err is a unique constraint violation.
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
