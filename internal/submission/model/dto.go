package model

import "fmt"

// Listing defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	StatusAll    = "all"
)

// SubmitRequest is the body of POST /api/submit-bug.
type SubmitRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RepositoryURL  string   `json:"repository_url"`
	IssueURL       string   `json:"issue_url"`
	Language       string   `json:"language"`
	Difficulty     string   `json:"difficulty"`
	Labels         []string `json:"labels"`
	SubmitterEmail string   `json:"submitter_email"`
	SubmitterName  string   `json:"submitter_name"`
}

// SubmitResponse acknowledges a new submission.
type SubmitResponse struct {
	Message      string `json:"message"`
	SubmissionID string `json:"submission_id"`
}

// MessageSubmitted is returned after a successful submit.
const MessageSubmitted = "Bug submitted successfully! It will be reviewed before being published."

// ReviewRequest is the body of PATCH /api/bug-submissions/:id.
type ReviewRequest struct {
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason"`
	ReviewedBy      string  `json:"reviewed_by"`
}

// ReviewResponse reports the decision that was recorded.
type ReviewResponse struct {
	Message string `json:"message"`
	Status  Status `json:"status"`
}

// ReviewMessage formats the confirmation for a review decision.
func ReviewMessage(status Status) string {
	return fmt.Sprintf("Bug submission %s successfully", status)
}

// ListQuery filters and pages the moderation queue.
type ListQuery struct {
	Page   int
	Limit  int
	Status string
}

// Normalize applies defaults and clamps out-of-range values.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Status == StatusAll {
		q.Status = ""
	}
}

// Offset returns the number of rows to skip.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ListResponse is one page of submissions.
type ListResponse struct {
	Submissions []BugSubmission `json:"submissions"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	Total       int64           `json:"total"`
}

// StatusCount is the number of submissions in one status.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int64  `json:"count"`
}
