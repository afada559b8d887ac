// Package repository provides data access layer for the repository catalog.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fixthisbug/internal/apperr"
	catalogModel "github.com/festy23/fixthisbug/internal/catalog/model"
)

// Repository defines the interface for catalog data access operations.
type Repository interface {
	// List returns one page of active repositories and the total match count.
	List(ctx context.Context, q catalogModel.ListQuery) ([]catalogModel.Repository, int64, error)
	// GetByID finds a repository by id.
	GetByID(ctx context.Context, id string) (*catalogModel.Repository, error)
	// GetByOwnerAndName finds a repository by exact owner and name.
	GetByOwnerAndName(ctx context.Context, owner, name string) (*catalogModel.Repository, error)
	// GetByGitHubID finds a repository by github_id.
	GetByGitHubID(ctx context.Context, githubID string) (*catalogModel.Repository, error)
	// Create inserts a new repository.
	Create(ctx context.Context, repo *catalogModel.Repository) error
	// Update writes every mutable field if repo.Version still matches the
	// stored version, then increments repo.Version.
	Update(ctx context.Context, repo *catalogModel.Repository) error
	// UpdateStars sets stars and stars_display for one repository.
	UpdateStars(ctx context.Context, id string, stars int) error
	// Languages groups active repositories by language.
	Languages(ctx context.Context) ([]catalogModel.LanguageCount, error)
	// ListActiveIDs returns the ids of every active repository.
	ListActiveIDs(ctx context.Context) ([]string, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new catalog repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// List returns one page of active repositories and the total match count.
func (r *repository) List(
	ctx context.Context,
	q catalogModel.ListQuery,
) ([]catalogModel.Repository, int64, error) {
	q.Normalize()

	var total int64
	if err := r.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, apperr.Store("failed to count repositories", err)
	}

	var repos []catalogModel.Repository
	err := r.filtered(ctx, q).
		Order(fmt.Sprintf("%s %s", q.Sort, strings.ToUpper(q.Order))).
		Order("id ASC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&repos).Error
	if err != nil {
		return nil, 0, apperr.Store("failed to list repositories", err)
	}

	if repos == nil {
		repos = []catalogModel.Repository{}
	}
	return repos, total, nil
}

// filtered builds the listing conditions on a fresh statement.
func (r *repository) filtered(ctx context.Context, q catalogModel.ListQuery) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&catalogModel.Repository{}).
		Where("is_active = ?", true)

	if q.Language != "" {
		query = query.Where("slug = ?", q.Language)
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(
			`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(owner) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}
	return query
}

// GetByID finds a repository by id.
func (r *repository) GetByID(ctx context.Context, id string) (*catalogModel.Repository, error) {
	return r.first(ctx, "failed to get repository", "id = ?", id)
}

// GetByOwnerAndName finds a repository by exact owner and name.
func (r *repository) GetByOwnerAndName(ctx context.Context, owner, name string) (*catalogModel.Repository, error) {
	return r.first(ctx, "failed to find repository by owner and name", "owner = ? AND name = ?", owner, name)
}

// GetByGitHubID finds a repository by github_id.
func (r *repository) GetByGitHubID(ctx context.Context, githubID string) (*catalogModel.Repository, error) {
	return r.first(ctx, "failed to find repository by github_id", "github_id = ?", githubID)
}

func (r *repository) first(ctx context.Context, op string, query string, args ...any) (*catalogModel.Repository, error) {
	var repo catalogModel.Repository
	err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at ASC").
		First(&repo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogModel.ErrRepositoryNotFound
		}
		return nil, apperr.Store(op, err)
	}
	return &repo, nil
}

// Create inserts a new repository.
func (r *repository) Create(ctx context.Context, repo *catalogModel.Repository) error {
	now := time.Now().UTC()
	if repo.LastModified.IsZero() {
		repo.LastModified = now
	}

	if err := r.db.WithContext(ctx).Create(repo).Error; err != nil {
		if isDuplicateError(err) {
			return catalogModel.ErrDuplicateGitHubID
		}
		return apperr.Store("failed to create repository", err)
	}

	r.logger.Debugw("repository created", "id", repo.ID, "github_id", repo.GitHubID)
	return nil
}

// Update writes every mutable field if repo.Version still matches the stored version.
func (r *repository) Update(ctx context.Context, repo *catalogModel.Repository) error {
	repo.Slug = catalogModel.GenerateSlug(repo.Language)
	repo.StarsDisplay = catalogModel.FormatStarsDisplay(repo.Stars)
	if repo.Tags == nil {
		repo.Tags = catalogModel.StringList{}
	}
	if repo.Issues == nil {
		repo.Issues = catalogModel.Issues{}
	}
	now := time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&catalogModel.Repository{}).
		Where("id = ? AND version = ?", repo.ID, repo.Version).
		Updates(map[string]any{
			"github_id":     repo.GitHubID,
			"name":          repo.Name,
			"owner":         repo.Owner,
			"description":   repo.Description,
			"language":      repo.Language,
			"slug":          repo.Slug,
			"url":           repo.URL,
			"stars":         repo.Stars,
			"stars_display": repo.StarsDisplay,
			"last_modified": repo.LastModified,
			"tags":          repo.Tags,
			"is_active":     repo.IsActive,
			"issues":        repo.Issues,
			"version":       repo.Version + 1,
			"updated_at":    now,
		})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return catalogModel.ErrDuplicateGitHubID
		}
		return apperr.Store("failed to update repository", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalogModel.ErrConcurrentUpdate
	}

	repo.Version++
	repo.UpdatedAt = now
	return nil
}

// UpdateStars sets stars and stars_display for one repository.
func (r *repository) UpdateStars(ctx context.Context, id string, stars int) error {
	result := r.db.WithContext(ctx).
		Model(&catalogModel.Repository{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"stars":         stars,
			"stars_display": catalogModel.FormatStarsDisplay(stars),
			"version":       gorm.Expr("version + 1"),
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return apperr.Store("failed to update stars", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalogModel.ErrRepositoryNotFound
	}
	return nil
}

// Languages groups active repositories by language, most common first.
func (r *repository) Languages(ctx context.Context) ([]catalogModel.LanguageCount, error) {
	var rows []catalogModel.LanguageCount
	err := r.db.WithContext(ctx).
		Model(&catalogModel.Repository{}).
		Select("language, COUNT(*) AS count, MIN(slug) AS slug").
		Where("is_active = ?", true).
		Group("language").
		Order("count DESC").
		Order("language ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Store("failed to aggregate languages", err)
	}
	if rows == nil {
		rows = []catalogModel.LanguageCount{}
	}
	return rows, nil
}

// ListActiveIDs returns the ids of every active repository.
func (r *repository) ListActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&catalogModel.Repository{}).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperr.Store("failed to list repository ids", err)
	}
	return ids, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// isDuplicateError checks if err is a unique constraint violation.
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
