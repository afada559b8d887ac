// Package model provides domain models and DTOs for bug submissions.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogModel "github.com/festy23/fixthisbug/internal/catalog/model"
)

// Status is the moderation state of a submission.
type Status string

// Status values. A submission starts pending and is moved to approved or
// rejected by a reviewer.
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsDecision reports whether s is a status a reviewer may set.
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

// BugSubmission is a user-reported bug awaiting moderation.
type BugSubmission struct {
	ID              string                  `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Title           string                  `gorm:"column:title;type:text;not null" json:"title"`
	Description     string                  `gorm:"column:description;type:text;not null" json:"description"`
	RepositoryURL   string                  `gorm:"column:repository_url;type:text;not null" json:"repository_url"`
	IssueURL        *string                 `gorm:"column:issue_url;type:text" json:"issue_url,omitempty"`
	Language        string                  `gorm:"column:language;type:varchar(100);not null" json:"language"`
	Difficulty      catalogModel.Difficulty `gorm:"column:difficulty;type:varchar(16);not null" json:"difficulty"`
	Labels          catalogModel.StringList `gorm:"column:labels;type:jsonb;not null" json:"labels"`
	SubmitterEmail  string                  `gorm:"column:submitter_email;type:varchar(320);not null" json:"submitter_email"`
	SubmitterName   string                  `gorm:"column:submitter_name;type:varchar(255);not null" json:"submitter_name"`
	Status          Status                  `gorm:"column:status;type:varchar(16);not null;index:idx_bug_submissions_status_created,priority:1" json:"status"`
	CreatedAt       time.Time               `gorm:"column:created_at;not null;index:idx_bug_submissions_status_created,priority:2" json:"created_at"`
	ReviewedBy      *string                 `gorm:"column:reviewed_by;type:varchar(255)" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time              `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	RejectionReason *string                 `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
}

// TableName specifies the table name for GORM.
func (BugSubmission) TableName() string {
	return "bug_submissions"
}

// BeforeCreate assigns an id and the initial status before insert.
func (b *BugSubmission) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.Labels == nil {
		b.Labels = catalogModel.StringList{}
	}
	return nil
}

// IssueLink returns the issue url, or the repository url when none was given.
func (b *BugSubmission) IssueLink() string {
	if b.IssueURL != nil && *b.IssueURL != "" {
		return *b.IssueURL
	}
	return b.RepositoryURL
}

// ParseRepositoryURL returns the last two non-empty path segments of url as
// owner and name. Missing segments come back empty.
func ParseRepositoryURL(url string) (owner, name string) {
	var parts []string
	for _, p := range strings.Split(url, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	default:
		return parts[len(parts)-2], parts[len(parts)-1]
	}
}
