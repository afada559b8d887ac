// Package service provides business logic layer for newsletter subscriptions.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/fixthisbug/internal/apperr"
	subscriberModel "github.com/festy23/fixthisbug/internal/subscriber/model"
	"github.com/festy23/fixthisbug/internal/subscriber/repository"
	"github.com/festy23/fixthisbug/pkg/keylock"
	"github.com/festy23/fixthisbug/pkg/retry"
)

// Service defines the interface for subscriber business logic operations.
type Service interface {
	// Subscribe creates an active subscription, or reactivates an inactive
	// one and merges the supplied preferences into the stored ones.
	Subscribe(ctx context.Context, req *subscriberModel.SubscribeRequest) (*subscriberModel.Subscriber, error)
	// Unsubscribe deactivates the subscription.
	Unsubscribe(ctx context.Context, email string) error
}

type service struct {
	repo   repository.Repository
	locks  *keylock.Locker
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New creates a new subscriber service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		locks:  keylock.New(),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Subscribe creates, reactivates or rejects a subscription for req.Email.
func (s *service) Subscribe(
	ctx context.Context,
	req *subscriberModel.SubscribeRequest,
) (*subscriberModel.Subscriber, error) {
	if req == nil {
		return nil, subscriberModel.ErrInvalidEmail
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, subscriberModel.ErrInvalidEmail
	}
	if p := req.Preferences; p != nil && p.NotificationFrequency != nil {
		if !subscriberModel.Frequency(*p.NotificationFrequency).IsValid() {
			return nil, subscriberModel.ErrInvalidFrequency
		}
	}

	unlock := s.locks.Lock(email)
	defer unlock()

	var sub *subscriberModel.Subscriber
	err := retry.Do(ctx, retry.ConflictConfig(isConflict), func() error {
		var err error
		sub, err = s.subscribeOnce(ctx, email, req.Preferences)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("subscribed", "email", email)
	return sub, nil
}

func (s *service) subscribeOnce(
	ctx context.Context,
	email string,
	prefs *subscriberModel.PreferencesInput,
) (*subscriberModel.Subscriber, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, subscriberModel.ErrSubscriberNotFound):
		sub := &subscriberModel.Subscriber{
			Email:        email,
			SubscribedAt: s.now(),
			IsActive:     true,
			Preferences:  subscriberModel.DefaultPreferences().Merge(prefs),
		}
		if err := s.repo.Create(ctx, sub); err != nil {
			return nil, err
		}
		return sub, nil
	case err != nil:
		return nil, err
	}

	if existing.IsActive {
		return nil, subscriberModel.ErrAlreadySubscribed
	}

	existing.IsActive = true
	existing.Preferences = existing.Preferences.Merge(prefs)
	if err := s.repo.Reactivate(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Unsubscribe deactivates the subscription.
func (s *service) Unsubscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return subscriberModel.ErrEmailRequired
	}

	unlock := s.locks.Lock(email)
	defer unlock()

	if err := s.repo.Deactivate(ctx, email); err != nil {
		return err
	}

	s.logger.Infow("unsubscribed", "email", email)
	return nil
}

func isConflict(err error) bool {
	return errors.Is(err, apperr.ErrConflict)
}
