package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestIssues_ValueScan(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	issues := Issues{{
		Title:      "Crash on empty input",
		URL:        "https://github.com/acme/widgets/issues/7",
		Number:     7,
		CreatedAt:  created,
		Labels:     []string{"bug"},
		Difficulty: DifficultyBeginner,
		Status:     IssueStatusOpen,
	}}

	value, err := issues.Value()
	require.NoError(t, err)

	t.Run("scan from string", func(t *testing.T) {
		var decoded Issues
		require.NoError(t, decoded.Scan(value))
		assert.Equal(t, issues, decoded)
	})

	t.Run("scan from bytes", func(t *testing.T) {
		var decoded Issues
		require.NoError(t, decoded.Scan([]byte(value.(string))))
		assert.Equal(t, issues, decoded)
	})

	t.Run("nil value encodes as empty array", func(t *testing.T) {
		v, err := Issues(nil).Value()
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("unsupported source", func(t *testing.T) {
		var decoded Issues
		assert.Error(t, decoded.Scan(42))
	})

	t.Run("nil source leaves value empty", func(t *testing.T) {
		var decoded Issues
		require.NoError(t, decoded.Scan(nil))
		assert.Nil(t, decoded)
	})
}

func TestStringList_ValueScan(t *testing.T) {
	v, err := StringList{"cli", "good-first-issue"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["cli","good-first-issue"]`, v)

	var decoded StringList
	require.NoError(t, decoded.Scan(v))
	assert.Equal(t, StringList{"cli", "good-first-issue"}, decoded)
}

func TestRepository_GORMIntegration(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Repository{}))

	repo := &Repository{
		GitHubID:     "acme/widgets",
		Name:         "widgets",
		Owner:        "acme",
		Description:  "Widgets",
		Language:     "C++",
		Slug:         "ignored",
		URL:          "https://github.com/acme/widgets",
		Stars:        2925,
		LastModified: time.Now().UTC(),
		IsActive:     true,
		Tags:         StringList{"cli"},
		Issues:       Issues{{Title: "one", URL: "u", Number: 1, Difficulty: DifficultyBeginner, Status: IssueStatusOpen}},
	}
	require.NoError(t, db.Create(repo).Error)

	assert.NotEmpty(t, repo.ID)
	assert.Equal(t, "c--", repo.Slug)
	assert.Equal(t, "2.9K", repo.StarsDisplay)
	assert.Equal(t, 1, repo.Version)

	var loaded Repository
	require.NoError(t, db.First(&loaded, "id = ?", repo.ID).Error)
	assert.Equal(t, StringList{"cli"}, loaded.Tags)
	require.Len(t, loaded.Issues, 1)
	assert.Equal(t, "one", loaded.Issues[0].Title)

	t.Run("github_id is unique", func(t *testing.T) {
		dup := &Repository{GitHubID: "acme/widgets", Name: "other", Owner: "acme", Language: "Go"}
		assert.ErrorIs(t, db.Create(dup).Error, gorm.ErrDuplicatedKey)
	})
}
