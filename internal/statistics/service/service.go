// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/fixthisbug/internal/statistics/model"
	"github.com/festy23/fixthisbug/internal/statistics/repository"
	submissionModel "github.com/festy23/fixthisbug/internal/submission/model"
)

// SubmissionCounter counts submissions per status.
type SubmissionCounter interface {
	CountByStatus(ctx context.Context) ([]submissionModel.StatusCount, error)
}

// SubscriberCounter counts active subscribers.
type SubscriberCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetStatistics returns the catalog, moderation and newsletter counters.
	GetStatistics(ctx context.Context) (*model.StatisticsResponse, error)
}

type service struct {
	repo        repository.Repository
	submissions SubmissionCounter
	subscribers SubscriberCounter
	logger      *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(
	repo repository.Repository,
	submissions SubmissionCounter,
	subscribers SubscriberCounter,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:        repo,
		submissions: submissions,
		subscribers: subscribers,
		logger:      logger,
	}
}

// GetStatistics returns the catalog, moderation and newsletter counters.
func (s *service) GetStatistics(ctx context.Context) (*model.StatisticsResponse, error) {
	catalog, err := s.repo.GetCatalogStatistics(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.submissions.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	var subs model.SubmissionStatistics
	for _, c := range counts {
		subs.Total += c.Count
		switch c.Status {
		case submissionModel.StatusPending:
			subs.Pending = c.Count
		case submissionModel.StatusApproved:
			subs.Approved = c.Count
		case submissionModel.StatusRejected:
			subs.Rejected = c.Count
		}
	}

	active, err := s.subscribers.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debugw("GetStatistics completed", "repositories", catalog.ActiveRepositories, "submissions", subs.Total)
	return &model.StatisticsResponse{
		Catalog:           *catalog,
		Submissions:       subs,
		ActiveSubscribers: active,
	}, nil
}
