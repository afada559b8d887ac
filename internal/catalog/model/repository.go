// Package model provides domain models and DTOs for the repository catalog.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Difficulty grades how approachable an issue is.
type Difficulty string

// Difficulty values.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// IsValid reports whether d is one of the known difficulties.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// IssueStatus is the lifecycle state of an embedded issue.
type IssueStatus string

// IssueStatus values.
const (
	IssueStatusOpen       IssueStatus = "open"
	IssueStatusInProgress IssueStatus = "in-progress"
	IssueStatusClosed     IssueStatus = "closed"
)

// IsValid reports whether s is one of the known issue statuses.
func (s IssueStatus) IsValid() bool {
	switch s {
	case IssueStatusOpen, IssueStatusInProgress, IssueStatusClosed:
		return true
	}
	return false
}

// Issue is a bug embedded in a repository document.
type Issue struct {
	Title         string      `json:"title"`
	URL           string      `json:"url"`
	Number        int         `json:"number"`
	CommentsCount int         `json:"comments_count"`
	CreatedAt     time.Time   `json:"created_at"`
	Labels        []string    `json:"labels"`
	Difficulty    Difficulty  `json:"difficulty"`
	Status        IssueStatus `json:"status"`
	Assignee      *string     `json:"assignee"`
}

// Repository is a catalog entry. Issues and tags are stored inline as JSON.
type Repository struct {
	ID           string     `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	GitHubID     string     `gorm:"column:github_id;type:varchar(255);uniqueIndex;not null" json:"github_id"`
	Name         string     `gorm:"column:name;type:varchar(255);not null;index:idx_repositories_owner_name" json:"name"`
	Owner        string     `gorm:"column:owner;type:varchar(255);not null;index:idx_repositories_owner_name" json:"owner"`
	Description  string     `gorm:"column:description;type:text;not null" json:"description"`
	Language     string     `gorm:"column:language;type:varchar(100);not null" json:"language"`
	Slug         string     `gorm:"column:slug;type:varchar(100);not null;index" json:"slug"`
	URL          string     `gorm:"column:url;type:text;not null" json:"url"`
	Stars        int        `gorm:"column:stars;not null" json:"stars"`
	StarsDisplay string     `gorm:"column:stars_display;type:varchar(16);not null" json:"stars_display"`
	LastModified time.Time  `gorm:"column:last_modified;not null" json:"last_modified"`
	Tags         StringList `gorm:"column:tags;type:jsonb;not null" json:"tags"`
	IsActive     bool       `gorm:"column:is_active;not null;index" json:"is_active"`
	Issues       Issues     `gorm:"column:issues;type:jsonb;not null" json:"issues"`
	Version      int        `gorm:"column:version;not null" json:"-"`
	CreatedAt    time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Repository) TableName() string {
	return "repositories"
}

// BeforeCreate assigns an id and the derived fields before insert.
func (r *Repository) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Version == 0 {
		r.Version = 1
	}
	if r.Tags == nil {
		r.Tags = StringList{}
	}
	if r.Issues == nil {
		r.Issues = Issues{}
	}
	r.Slug = GenerateSlug(r.Language)
	r.StarsDisplay = FormatStarsDisplay(r.Stars)
	return nil
}

// NextIssueNumber draws issue numbers from draw until one is unused in r.
// After maxDraws collisions it falls back to the highest number plus one.
func (r *Repository) NextIssueNumber(draw func() int, maxDraws int) int {
	used := make(map[int]struct{}, len(r.Issues))
	highest := -1
	for _, issue := range r.Issues {
		used[issue.Number] = struct{}{}
		if issue.Number > highest {
			highest = issue.Number
		}
	}

	for i := 0; i < maxDraws; i++ {
		n := draw()
		if _, taken := used[n]; !taken {
			return n
		}
	}
	return highest + 1
}
