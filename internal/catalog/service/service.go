// Package service provides business logic layer for the repository catalog.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fixthisbug/internal/apperr"
	catalogModel "github.com/festy23/fixthisbug/internal/catalog/model"
	"github.com/festy23/fixthisbug/internal/catalog/repository"
	"github.com/festy23/fixthisbug/internal/github"
	"github.com/festy23/fixthisbug/pkg/keylock"
	"github.com/festy23/fixthisbug/pkg/retry"
)

// StarsFetcher looks up the live stargazer count of a repository.
type StarsFetcher interface {
	StarCount(ctx context.Context, owner, name string) (int, error)
}

// Service defines the interface for catalog business logic operations.
type Service interface {
	// ListRepositories returns one filtered, sorted page of active repositories.
	ListRepositories(ctx context.Context, q catalogModel.ListQuery) (*catalogModel.ListResponse, error)
	// GetRepository returns a repository by id.
	GetRepository(ctx context.Context, id string) (*catalogModel.Repository, error)
	// Languages returns the language aggregate of active repositories.
	Languages(ctx context.Context) ([]catalogModel.LanguageCount, error)
	// UpsertRepository creates or replaces the repository keyed by github_id.
	// created is true when a new document was inserted.
	UpsertRepository(ctx context.Context, req *catalogModel.UpsertRequest) (repo *catalogModel.Repository, created bool, err error)
	// RefreshStars updates stars from GitHub for one repository.
	RefreshStars(ctx context.Context, id string) (*catalogModel.Repository, error)
	// RefreshAllStars refreshes every active repository and returns how many
	// were updated. Individual failures are logged and skipped.
	RefreshAllStars(ctx context.Context) (int, error)
}

type service struct {
	repo    repository.Repository
	db      *gorm.DB
	locks   *keylock.Locker
	fetcher StarsFetcher
	logger  *zap.SugaredLogger
	now     func() time.Time
}

// Option customizes the service.
type Option func(*service)

// WithStarsFetcher enables RefreshStars.
func WithStarsFetcher(f StarsFetcher) Option {
	return func(s *service) { s.fetcher = f }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// New creates a new catalog service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger, opts ...Option) Service {
	s := &service{
		repo:   repo,
		db:     db,
		locks:  keylock.New(),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListRepositories returns one filtered, sorted page of active repositories.
func (s *service) ListRepositories(ctx context.Context, q catalogModel.ListQuery) (*catalogModel.ListResponse, error) {
	q.Normalize()

	repos, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &catalogModel.ListResponse{
		Repositories: repos,
		TotalPages:   catalogModel.TotalPages(total, q.Limit),
		CurrentPage:  q.Page,
		Total:        total,
	}, nil
}

// GetRepository returns a repository by id.
func (s *service) GetRepository(ctx context.Context, id string) (*catalogModel.Repository, error) {
	if strings.TrimSpace(id) == "" {
		return nil, catalogModel.ErrRepositoryNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Languages returns the language aggregate of active repositories.
func (s *service) Languages(ctx context.Context) ([]catalogModel.LanguageCount, error) {
	return s.repo.Languages(ctx)
}

// UpsertRepository creates or replaces the repository keyed by github_id.
func (s *service) UpsertRepository(
	ctx context.Context,
	req *catalogModel.UpsertRequest,
) (*catalogModel.Repository, bool, error) {
	incoming, err := s.buildRepository(req)
	if err != nil {
		return nil, false, err
	}

	unlock := s.locks.Lock(incoming.GitHubID)
	defer unlock()

	var (
		result  *catalogModel.Repository
		created bool
	)
	err = retry.Do(ctx, retry.ConflictConfig(isConflict), func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			txRepo := repository.New(tx, s.logger)

			existing, err := txRepo.GetByGitHubID(ctx, incoming.GitHubID)
			switch {
			case errors.Is(err, catalogModel.ErrRepositoryNotFound):
				repo := *incoming
				if err := txRepo.Create(ctx, &repo); err != nil {
					return err
				}
				result, created = &repo, true
				return nil
			case err != nil:
				return err
			}

			existing.Name = incoming.Name
			existing.Owner = incoming.Owner
			existing.Description = incoming.Description
			existing.Language = incoming.Language
			existing.URL = incoming.URL
			existing.Stars = incoming.Stars
			existing.Tags = incoming.Tags
			existing.IsActive = incoming.IsActive
			existing.Issues = incoming.Issues
			existing.LastModified = s.now()
			if err := txRepo.Update(ctx, existing); err != nil {
				return err
			}
			result, created = existing, false
			return nil
		})
	})
	if err != nil {
		return nil, false, err
	}

	s.logger.Infow("repository upserted",
		"github_id", result.GitHubID,
		"created", created,
		"issues", len(result.Issues),
	)
	return result, created, nil
}

// buildRepository validates req and converts it to a repository document.
func (s *service) buildRepository(req *catalogModel.UpsertRequest) (*catalogModel.Repository, error) {
	if req == nil {
		return nil, catalogModel.ErrMissingFields
	}

	name := strings.TrimSpace(req.Name)
	owner := strings.TrimSpace(req.Owner)
	description := strings.TrimSpace(req.Description)
	language := strings.TrimSpace(req.Language)
	url := strings.TrimSpace(req.URL)
	if name == "" || owner == "" || description == "" || language == "" || url == "" {
		return nil, catalogModel.ErrMissingFields
	}
	if req.Stars < 0 {
		return nil, catalogModel.ErrNegativeStars
	}

	now := s.now()
	issues := make(catalogModel.Issues, 0, len(req.Issues))
	for _, in := range req.Issues {
		issue, err := buildIssue(in, now)
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}

	githubID := strings.TrimSpace(req.GitHubID)
	if githubID == "" {
		githubID = owner + "/" + name
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	lastModified := now
	if req.LastModified != nil {
		lastModified = req.LastModified.UTC()
	}

	tags := catalogModel.StringList(req.Tags)
	if tags == nil {
		tags = catalogModel.StringList{}
	}

	return &catalogModel.Repository{
		GitHubID:     githubID,
		Name:         name,
		Owner:        owner,
		Description:  description,
		Language:     language,
		Slug:         catalogModel.GenerateSlug(language),
		URL:          url,
		Stars:        req.Stars,
		StarsDisplay: catalogModel.FormatStarsDisplay(req.Stars),
		LastModified: lastModified,
		Tags:         tags,
		IsActive:     isActive,
		Issues:       issues,
	}, nil
}

func buildIssue(in catalogModel.IssueInput, now time.Time) (catalogModel.Issue, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.URL) == "" {
		return catalogModel.Issue{}, catalogModel.ErrInvalidIssue
	}
	if in.CommentsCount < 0 {
		return catalogModel.Issue{}, catalogModel.ErrNegativeComments
	}

	difficulty := catalogModel.DifficultyBeginner
	if in.Difficulty != "" {
		difficulty = catalogModel.Difficulty(in.Difficulty)
		if !difficulty.IsValid() {
			return catalogModel.Issue{}, catalogModel.ErrInvalidDifficulty
		}
	}

	status := catalogModel.IssueStatusOpen
	if in.Status != "" {
		status = catalogModel.IssueStatus(in.Status)
		if !status.IsValid() {
			return catalogModel.Issue{}, catalogModel.ErrInvalidIssueStatus
		}
	}

	createdAt := now
	if in.CreatedAt != nil {
		createdAt = in.CreatedAt.UTC()
	}

	labels := in.Labels
	if labels == nil {
		labels = []string{}
	}

	return catalogModel.Issue{
		Title:         strings.TrimSpace(in.Title),
		URL:           strings.TrimSpace(in.URL),
		Number:        in.Number,
		CommentsCount: in.CommentsCount,
		CreatedAt:     createdAt,
		Labels:        labels,
		Difficulty:    difficulty,
		Status:        status,
		Assignee:      in.Assignee,
	}, nil
}

// RefreshStars updates stars from GitHub for one repository.
func (s *service) RefreshStars(ctx context.Context, id string) (*catalogModel.Repository, error) {
	if s.fetcher == nil {
		return nil, catalogModel.ErrStarsUnavailable
	}

	repo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stars, err := s.fetcher.StarCount(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStars(ctx, repo.ID, stars); err != nil {
		return nil, err
	}

	s.logger.Infow("stars refreshed", "github_id", repo.GitHubID, "from", repo.Stars, "to", stars)
	return s.repo.GetByID(ctx, repo.ID)
}

// RefreshAllStars refreshes every active repository.
func (s *service) RefreshAllStars(ctx context.Context) (int, error) {
	if s.fetcher == nil {
		return 0, catalogModel.ErrStarsUnavailable
	}

	ids, err := s.repo.ListActiveIDs(ctx)
	if err != nil {
		return 0, err
	}

	updated, missing := 0, 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		if _, err := s.RefreshStars(ctx, id); err != nil {
			if github.IsNotFound(err) {
				missing++
				s.logger.Infow("repository missing on GitHub", "id", id, "error", err)
				continue
			}
			fields := []interface{}{"id", id, "error", err}
			if status, ok := github.StatusCode(err); ok {
				fields = append(fields, "status", status)
			}
			s.logger.Warnw("failed to refresh stars", fields...)
			continue
		}
		updated++
	}

	s.logger.Infow("stars refresh finished",
		"total", len(ids),
		"updated", updated,
		"missing", missing,
	)
	return updated, nil
}

func isConflict(err error) bool {
	return errors.Is(err, apperr.ErrConflict)
}
