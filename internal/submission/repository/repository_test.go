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

	catalogModel "github.com/festy23/fixthisbug/internal/catalog/model"
	submissionModel "github.com/festy23/fixthisbug/internal/submission/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&submissionModel.BugSubmission{}))
	return db
}

func newSubmission(title string, createdAt time.Time) *submissionModel.BugSubmission {
	return &submissionModel.BugSubmission{
		Title:          title,
		Description:    "Crashes on start",
		RepositoryURL:  "https://github.com/acme/widgets",
		Language:       "Go",
		Difficulty:     catalogModel.DifficultyBeginner,
		Labels:         catalogModel.StringList{"bug"},
		SubmitterEmail: "ada@example.com",
		SubmitterName:  "Ada",
		CreatedAt:      createdAt,
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := New(setupTestDB(t), zap.NewNop().Sugar())

	sub := newSubmission("Crash", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, sub))
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, submissionModel.StatusPending, sub.Status)

	got, err := repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crash", got.Title)
	assert.Equal(t, []string{"bug"}, []string(got.Labels))
	assert.Nil(t, got.IssueURL)
	assert.Nil(t, got.ReviewedAt)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, submissionModel.ErrSubmissionNotFound)
}

func TestRepository_SaveReview(t *testing.T) {
	ctx := context.Background()
	repo := New(setupTestDB(t), zap.NewNop().Sugar())

	sub := newSubmission("Crash", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, sub))

	reviewer := "mod"
	reason := "duplicate"
	now := time.Now().UTC().Truncate(time.Second)
	sub.Status = submissionModel.StatusRejected
	sub.ReviewedBy = &reviewer
	sub.ReviewedAt = &now
	sub.RejectionReason = &reason
	require.NoError(t, repo.SaveReview(ctx, sub))

	got, err := repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, submissionModel.StatusRejected, got.Status)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, "mod", *got.ReviewedBy)
	require.NotNil(t, got.ReviewedAt)
	assert.True(t, now.Equal(*got.ReviewedAt))
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "duplicate", *got.RejectionReason)

	missing := newSubmission("x", now)
	missing.ID = "missing"
	assert.ErrorIs(t, repo.SaveReview(ctx, missing), submissionModel.ErrSubmissionNotFound)
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := New(setupTestDB(t), zap.NewNop().Sugar())

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		sub := newSubmission(fmt.Sprintf("bug-%d", i), base.Add(time.Duration(i)*time.Hour))
		if i%2 == 1 {
			sub.Status = submissionModel.StatusApproved
		}
		require.NoError(t, repo.Create(ctx, sub))
	}

	t.Run("newest first", func(t *testing.T) {
		subs, total, err := repo.List(ctx, submissionModel.ListQuery{Status: "all"})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, subs, 5)
		assert.Equal(t, "bug-4", subs[0].Title)
		assert.Equal(t, "bug-0", subs[4].Title)
	})

	t.Run("status filter", func(t *testing.T) {
		subs, total, err := repo.List(ctx, submissionModel.ListQuery{Status: "approved"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, subs, 2)
		assert.Equal(t, "bug-3", subs[0].Title)
	})

	t.Run("pagination", func(t *testing.T) {
		subs, total, err := repo.List(ctx, submissionModel.ListQuery{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, subs, 2)
		assert.Equal(t, "bug-2", subs[0].Title)
		assert.Equal(t, "bug-1", subs[1].Title)
	})

	t.Run("unknown status matches nothing", func(t *testing.T) {
		subs, total, err := repo.List(ctx, submissionModel.ListQuery{Status: "archived"})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, subs)
		assert.NotNil(t, subs)
	})
}

func TestRepository_CountByStatus(t *testing.T) {
	ctx := context.Background()
	repo := New(setupTestDB(t), zap.NewNop().Sugar())

	rows, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	now := time.Now().UTC()
	for i, status := range []submissionModel.Status{
		submissionModel.StatusPending,
		submissionModel.StatusPending,
		submissionModel.StatusRejected,
	} {
		sub := newSubmission(fmt.Sprintf("bug-%d", i), now)
		sub.Status = status
		require.NoError(t, repo.Create(ctx, sub))
	}

	rows, err = repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, []submissionModel.StatusCount{
		{Status: submissionModel.StatusPending, Count: 2},
		{Status: submissionModel.StatusRejected, Count: 1},
	}, rows)
}
