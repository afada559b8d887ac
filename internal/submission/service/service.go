// Package service provides business logic layer for bug submissions and
// their moderation.
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
	catalogRepository "github.com/festy23/fixthisbug/internal/catalog/repository"
	submissionModel "github.com/festy23/fixthisbug/internal/submission/model"
	"github.com/festy23/fixthisbug/internal/submission/repository"
	"github.com/festy23/fixthisbug/pkg/keylock"
	"github.com/festy23/fixthisbug/pkg/random"
	"github.com/festy23/fixthisbug/pkg/retry"
)

const (
	// issueNumberSpace bounds generated issue numbers to [0, issueNumberSpace).
	issueNumberSpace = 10000
	// issueNumberDraws is how many collisions are tolerated before falling
	// back to max+1.
	issueNumberDraws = 32
)

// Service defines the interface for submission business logic operations.
type Service interface {
	// Submit validates and stores a new pending submission.
	Submit(ctx context.Context, req *submissionModel.SubmitRequest) (*submissionModel.BugSubmission, error)
	// Review records a moderation decision. Approval merges the submission
	// into the catalog in the same transaction as the status change.
	Review(ctx context.Context, id string, req *submissionModel.ReviewRequest) (*submissionModel.BugSubmission, error)
	// List returns one page of submissions, newest first.
	List(ctx context.Context, q submissionModel.ListQuery) (*submissionModel.ListResponse, error)
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	locks  *keylock.Locker
	rand   random.Rand
	logger *zap.SugaredLogger
	now    func() time.Time
}

// Option customizes the service.
type Option func(*service)

// WithRand sets the source of generated issue numbers.
func WithRand(r random.Rand) Option {
	return func(s *service) { s.rand = r }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// New creates a new submission service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger, opts ...Option) Service {
	s := &service{
		repo:   repo,
		db:     db,
		locks:  keylock.New(),
		rand:   random.NewCryptoRand(),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates and stores a new pending submission.
func (s *service) Submit(
	ctx context.Context,
	req *submissionModel.SubmitRequest,
) (*submissionModel.BugSubmission, error) {
	sub, err := s.buildSubmission(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Infow("bug submitted", "id", sub.ID, "repository_url", sub.RepositoryURL)
	return sub, nil
}

// buildSubmission checks required fields, then email, then difficulty.
func (s *service) buildSubmission(req *submissionModel.SubmitRequest) (*submissionModel.BugSubmission, error) {
	if req == nil {
		return nil, submissionModel.ErrMissingFields
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	repoURL := strings.TrimSpace(req.RepositoryURL)
	language := strings.TrimSpace(req.Language)
	difficulty := strings.TrimSpace(req.Difficulty)
	email := strings.TrimSpace(req.SubmitterEmail)
	name := strings.TrimSpace(req.SubmitterName)
	for _, v := range []string{title, description, repoURL, language, difficulty, email, name} {
		if v == "" {
			return nil, submissionModel.ErrMissingFields
		}
	}

	if !strings.Contains(email, "@") {
		return nil, submissionModel.ErrInvalidEmail
	}
	if !catalogModel.Difficulty(difficulty).IsValid() {
		return nil, submissionModel.ErrInvalidDifficulty
	}

	var issueURL *string
	if v := strings.TrimSpace(req.IssueURL); v != "" {
		issueURL = &v
	}

	labels := make(catalogModel.StringList, 0, len(req.Labels))
	labels = append(labels, req.Labels...)

	return &submissionModel.BugSubmission{
		Title:          title,
		Description:    description,
		RepositoryURL:  repoURL,
		IssueURL:       issueURL,
		Language:       language,
		Difficulty:     catalogModel.Difficulty(difficulty),
		Labels:         labels,
		SubmitterEmail: email,
		SubmitterName:  name,
		Status:         submissionModel.StatusPending,
		CreatedAt:      s.now(),
	}, nil
}

// Review records a moderation decision.
func (s *service) Review(
	ctx context.Context,
	id string,
	req *submissionModel.ReviewRequest,
) (*submissionModel.BugSubmission, error) {
	if req == nil || !submissionModel.Status(req.Status).IsDecision() {
		return nil, submissionModel.ErrInvalidStatus
	}
	decision := submissionModel.Status(req.Status)

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, submissionModel.ErrSubmissionNotFound
	}

	if decision == submissionModel.StatusApproved {
		// The lock key depends on the submission's repository url.
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		owner, name := submissionModel.ParseRepositoryURL(current.RepositoryURL)
		unlock := s.locks.Lock(owner + "/" + name)
		defer unlock()
	}

	var result *submissionModel.BugSubmission
	err := retry.Do(ctx, retry.ConflictConfig(isConflict), func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var txErr error
			result, txErr = s.reviewInTransaction(ctx, tx, id, decision, req)
			return txErr
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("submission reviewed", "id", id, "status", decision)
	return result, nil
}

func (s *service) reviewInTransaction(
	ctx context.Context,
	tx *gorm.DB,
	id string,
	decision submissionModel.Status,
	req *submissionModel.ReviewRequest,
) (*submissionModel.BugSubmission, error) {
	txRepo := repository.New(tx, s.logger)

	sub, err := txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sub.Status = decision
	sub.ReviewedAt = &now
	sub.ReviewedBy = nil
	if reviewer := strings.TrimSpace(req.ReviewedBy); reviewer != "" {
		sub.ReviewedBy = &reviewer
	}
	if decision == submissionModel.StatusRejected && req.RejectionReason != nil &&
		strings.TrimSpace(*req.RejectionReason) != "" {
		reason := *req.RejectionReason
		sub.RejectionReason = &reason
	}

	if err := txRepo.SaveReview(ctx, sub); err != nil {
		return nil, err
	}

	if decision == submissionModel.StatusApproved {
		if err := s.mergeIntoCatalog(ctx, tx, sub, now); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

// mergeIntoCatalog appends the submission as an open issue to the repository
// named by its url, creating the repository when none exists.
func (s *service) mergeIntoCatalog(
	ctx context.Context,
	tx *gorm.DB,
	sub *submissionModel.BugSubmission,
	now time.Time,
) error {
	catalog := catalogRepository.New(tx, s.logger)
	owner, name := submissionModel.ParseRepositoryURL(sub.RepositoryURL)

	target, err := catalog.GetByOwnerAndName(ctx, owner, name)
	if errors.Is(err, catalogModel.ErrRepositoryNotFound) {
		// A document renamed away from owner/name can still own the github_id.
		target, err = catalog.GetByGitHubID(ctx, owner+"/"+name)
	}

	switch {
	case errors.Is(err, catalogModel.ErrRepositoryNotFound):
		repo := &catalogModel.Repository{
			GitHubID:     owner + "/" + name,
			Name:         name,
			Owner:        owner,
			Description:  "Repository for " + name,
			Language:     sub.Language,
			URL:          sub.RepositoryURL,
			Stars:        0,
			LastModified: now,
			Tags:         catalogModel.StringList{},
			IsActive:     true,
		}
		repo.Issues = catalogModel.Issues{s.issueFor(sub, repo)}
		if err := catalog.Create(ctx, repo); err != nil {
			return err
		}
		s.logger.Infow("repository created from submission",
			"repository_id", repo.ID, "github_id", repo.GitHubID, "submission_id", sub.ID)
		return nil
	case err != nil:
		return err
	}

	target.Issues = append(target.Issues, s.issueFor(sub, target))
	target.LastModified = now
	if err := catalog.Update(ctx, target); err != nil {
		return err
	}
	s.logger.Infow("issue appended from submission",
		"repository_id", target.ID, "issues", len(target.Issues), "submission_id", sub.ID)
	return nil
}

func (s *service) issueFor(sub *submissionModel.BugSubmission, repo *catalogModel.Repository) catalogModel.Issue {
	labels := make([]string, 0, len(sub.Labels))
	labels = append(labels, sub.Labels...)

	return catalogModel.Issue{
		Title:         sub.Title,
		URL:           sub.IssueLink(),
		Number:        repo.NextIssueNumber(func() int { return s.rand.Intn(issueNumberSpace) }, issueNumberDraws),
		CommentsCount: 0,
		CreatedAt:     sub.CreatedAt,
		Labels:        labels,
		Difficulty:    sub.Difficulty,
		Status:        catalogModel.IssueStatusOpen,
	}
}

// List returns one page of submissions, newest first.
func (s *service) List(
	ctx context.Context,
	q submissionModel.ListQuery,
) (*submissionModel.ListResponse, error) {
	q.Normalize()

	subs, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &submissionModel.ListResponse{
		Submissions: subs,
		TotalPages:  catalogModel.TotalPages(total, q.Limit),
		CurrentPage: q.Page,
		Total:       total,
	}, nil
}

func isConflict(err error) bool {
	return errors.Is(err, apperr.ErrConflict)
}
