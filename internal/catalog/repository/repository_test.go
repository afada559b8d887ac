package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/fixthisbug/internal/apperr"
	catalogModel "github.com/festy23/fixthisbug/internal/catalog/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&catalogModel.Repository{}))
	return db
}

func newRepo(owner, name, language string, stars int) *catalogModel.Repository {
	return &catalogModel.Repository{
		GitHubID:    owner + "/" + name,
		Name:        name,
		Owner:       owner,
		Description: "The " + name + " project",
		Language:    language,
		URL:         "https://github.com/" + owner + "/" + name,
		Stars:       stars,
		IsActive:    true,
	}
}

func seed(t *testing.T, r Repository, repos ...*catalogModel.Repository) {
	t.Helper()
	for _, repo := range repos {
		require.NoError(t, r.Create(context.Background(), repo))
	}
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		r := New(setupTestDB(t), zap.NewNop().Sugar())
		repo := newRepo("acme", "widgets", "Go", 1500)

		require.NoError(t, r.Create(ctx, repo))
		assert.NotEmpty(t, repo.ID)
		assert.Equal(t, "go", repo.Slug)
		assert.Equal(t, "1.5K", repo.StarsDisplay)
		assert.False(t, repo.LastModified.IsZero())

		loaded, err := r.GetByID(ctx, repo.ID)
		require.NoError(t, err)
		assert.Equal(t, "acme/widgets", loaded.GitHubID)
		assert.Equal(t, 1, loaded.Version)
	})

	t.Run("duplicate github_id", func(t *testing.T) {
		r := New(setupTestDB(t), zap.NewNop().Sugar())
		seed(t, r, newRepo("acme", "widgets", "Go", 1))

		err := r.Create(ctx, newRepo("acme", "widgets", "Rust", 2))
		assert.ErrorIs(t, err, catalogModel.ErrDuplicateGitHubID)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	r := New(setupTestDB(t), zap.NewNop().Sugar())
	repo := newRepo("acme", "widgets", "Go", 1)
	seed(t, r, repo)

	t.Run("by owner and name", func(t *testing.T) {
		found, err := r.GetByOwnerAndName(ctx, "acme", "widgets")
		require.NoError(t, err)
		assert.Equal(t, repo.ID, found.ID)

		_, err = r.GetByOwnerAndName(ctx, "ACME", "widgets")
		assert.ErrorIs(t, err, catalogModel.ErrRepositoryNotFound)
	})

	t.Run("by github_id", func(t *testing.T) {
		found, err := r.GetByGitHubID(ctx, "acme/widgets")
		require.NoError(t, err)
		assert.Equal(t, repo.ID, found.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := r.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, catalogModel.ErrRepositoryNotFound)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("version checked write", func(t *testing.T) {
		r := New(setupTestDB(t), zap.NewNop().Sugar())
		repo := newRepo("acme", "widgets", "Go", 1)
		seed(t, r, repo)

		loaded, err := r.GetByID(ctx, repo.ID)
		require.NoError(t, err)
		loaded.Issues = append(loaded.Issues, catalogModel.Issue{Title: "bug", URL: "u", Number: 1})
		loaded.Language = "C++"
		loaded.Stars = 2_000_000

		require.NoError(t, r.Update(ctx, loaded))
		assert.Equal(t, 2, loaded.Version)

		reloaded, err := r.GetByID(ctx, repo.ID)
		require.NoError(t, err)
		assert.Len(t, reloaded.Issues, 1)
		assert.Equal(t, "c--", reloaded.Slug)
		assert.Equal(t, "2.0M", reloaded.StarsDisplay)
		assert.Equal(t, 2, reloaded.Version)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		r := New(setupTestDB(t), zap.NewNop().Sugar())
		repo := newRepo("acme", "widgets", "Go", 1)
		seed(t, r, repo)

		first, err := r.GetByID(ctx, repo.ID)
		require.NoError(t, err)
		second, err := r.GetByID(ctx, repo.ID)
		require.NoError(t, err)

		first.Issues = catalogModel.Issues{{Title: "first"}}
		require.NoError(t, r.Update(ctx, first))

		second.Issues = catalogModel.Issues{{Title: "second"}}
		err = r.Update(ctx, second)
		assert.ErrorIs(t, err, catalogModel.ErrConcurrentUpdate)

		reloaded, err := r.GetByID(ctx, repo.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.Issues, 1)
		assert.Equal(t, "first", reloaded.Issues[0].Title)
	})
}

func TestRepository_UpdateStars(t *testing.T) {
	ctx := context.Background()
	r := New(setupTestDB(t), zap.NewNop().Sugar())
	repo := newRepo("acme", "widgets", "Go", 1)
	seed(t, r, repo)

	require.NoError(t, r.UpdateStars(ctx, repo.ID, 2925))

	loaded, err := r.GetByID(ctx, repo.ID)
	require.NoError(t, err)
	assert.Equal(t, 2925, loaded.Stars)
	assert.Equal(t, "2.9K", loaded.StarsDisplay)
	assert.Equal(t, 2, loaded.Version)

	assert.ErrorIs(t, r.UpdateStars(ctx, "missing", 1), catalogModel.ErrRepositoryNotFound)
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	r := New(db, zap.NewNop().Sugar())

	inactive := newRepo("ghost", "archived", "Go", 10_000)
	seed(t, r,
		newRepo("acme", "widgets", "Go", 300),
		newRepo("acme", "gadgets", "Python", 100),
		newRepo("zeta", "parser", "C++", 200),
		newRepo("beta", "100_percent", "Go", 50),
		inactive,
	)
	require.NoError(t, db.Model(&catalogModel.Repository{}).
		Where("id = ?", inactive.ID).Update("is_active", false).Error)

	names := func(repos []catalogModel.Repository) []string {
		out := make([]string, 0, len(repos))
		for _, repo := range repos {
			out = append(out, repo.Name)
		}
		return out
	}

	t.Run("defaults sort by stars desc and hide inactive", func(t *testing.T) {
		repos, total, err := r.List(ctx, catalogModel.ListQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Equal(t, []string{"widgets", "parser", "gadgets", "100_percent"}, names(repos))
	})

	t.Run("language filter by slug", func(t *testing.T) {
		repos, total, err := r.List(ctx, catalogModel.ListQuery{Language: "c--"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, []string{"parser"}, names(repos))
	})

	t.Run("all language is no filter", func(t *testing.T) {
		_, total, err := r.List(ctx, catalogModel.ListQuery{Language: "all"})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
	})

	t.Run("search is case insensitive across fields", func(t *testing.T) {
		repos, total, err := r.List(ctx, catalogModel.ListQuery{Search: "ACME", Sort: "name", Order: "asc"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, []string{"gadgets", "widgets"}, names(repos))

		repos, _, err = r.List(ctx, catalogModel.ListQuery{Search: "Parser PROJECT"})
		require.NoError(t, err)
		assert.Equal(t, []string{"parser"}, names(repos))
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		repos, _, err := r.List(ctx, catalogModel.ListQuery{Search: "100_"})
		require.NoError(t, err)
		assert.Equal(t, []string{"100_percent"}, names(repos))

		_, total, err := r.List(ctx, catalogModel.ListQuery{Search: "%"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("pagination", func(t *testing.T) {
		repos, total, err := r.List(ctx, catalogModel.ListQuery{Page: 2, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Equal(t, []string{"100_percent"}, names(repos))

		repos, _, err = r.List(ctx, catalogModel.ListQuery{Page: 5, Limit: 3})
		require.NoError(t, err)
		assert.Empty(t, repos)
		assert.NotNil(t, repos)
	})

	t.Run("ascending by stars", func(t *testing.T) {
		repos, _, err := r.List(ctx, catalogModel.ListQuery{Order: "asc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"100_percent", "gadgets", "parser", "widgets"}, names(repos))
	})
}

func TestRepository_Languages(t *testing.T) {
	ctx := context.Background()

	t.Run("grouped and ordered", func(t *testing.T) {
		r := New(setupTestDB(t), zap.NewNop().Sugar())
		seed(t, r,
			newRepo("a", "one", "Go", 1),
			newRepo("a", "two", "Go", 1),
			newRepo("a", "three", "Rust", 1),
			newRepo("a", "four", "C++", 1),
			newRepo("a", "five", "Go", 1),
			newRepo("a", "six", "Rust", 1),
		)

		langs, err := r.Languages(ctx)
		require.NoError(t, err)
		assert.Equal(t, []catalogModel.LanguageCount{
			{Language: "Go", Count: 3, Slug: "go"},
			{Language: "Rust", Count: 2, Slug: "rust"},
			{Language: "C++", Count: 1, Slug: "c--"},
		}, langs)
	})

	t.Run("empty catalog", func(t *testing.T) {
		r := New(setupTestDB(t), zap.NewNop().Sugar())
		langs, err := r.Languages(ctx)
		require.NoError(t, err)
		assert.Empty(t, langs)
		assert.NotNil(t, langs)
	})
}

func TestRepository_ListActiveIDs(t *testing.T) {
	ctx := context.Background()
	r := New(setupTestDB(t), zap.NewNop().Sugar())

	var want []string
	for i := 0; i < 3; i++ {
		repo := newRepo("acme", fmt.Sprintf("repo-%d", i), "Go", i)
		seed(t, r, repo)
		want = append(want, repo.ID)
		time.Sleep(2 * time.Millisecond)
	}

	ids, err := r.ListActiveIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, ids)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `snake\_case`, escapeLike("snake_case"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
}
