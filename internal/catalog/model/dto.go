package model

import "time"

// Sortable repository columns.
var sortableFields = map[string]struct{}{
	"stars":         {},
	"name":          {},
	"owner":         {},
	"language":      {},
	"last_modified": {},
	"created_at":    {},
}

// Listing defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	DefaultSort  = "stars"
	DefaultOrder = "desc"
)

// ListQuery filters and pages the repository listing.
type ListQuery struct {
	Page     int
	Limit    int
	Language string
	Search   string
	Sort     string
	Order    string
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
	if _, ok := sortableFields[q.Sort]; !ok {
		q.Sort = DefaultSort
	}
	if q.Order != "asc" {
		q.Order = DefaultOrder
	}
	if q.Language == "all" {
		q.Language = ""
	}
}

// Offset returns the number of rows to skip.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ListResponse is one page of repositories.
type ListResponse struct {
	Repositories []Repository `json:"repositories"`
	TotalPages   int          `json:"totalPages"`
	CurrentPage  int          `json:"currentPage"`
	Total        int64        `json:"total"`
}

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// LanguageCount is one row of the language aggregate.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int64  `json:"count"`
	Slug     string `json:"slug"`
}

// IssueInput is an issue supplied to UpsertRepository.
type IssueInput struct {
	Title         string     `json:"title" yaml:"title"`
	URL           string     `json:"url" yaml:"url"`
	Number        int        `json:"number" yaml:"number"`
	CommentsCount int        `json:"comments_count" yaml:"comments_count"`
	CreatedAt     *time.Time `json:"created_at" yaml:"created_at"`
	Labels        []string   `json:"labels" yaml:"labels"`
	Difficulty    string     `json:"difficulty" yaml:"difficulty"`
	Status        string     `json:"status" yaml:"status"`
	Assignee      *string    `json:"assignee" yaml:"assignee"`
}

// UpsertRequest creates or replaces a repository keyed by GitHubID.
type UpsertRequest struct {
	GitHubID     string       `json:"github_id" yaml:"github_id"`
	Name         string       `json:"name" yaml:"name"`
	Owner        string       `json:"owner" yaml:"owner"`
	Description  string       `json:"description" yaml:"description"`
	Language     string       `json:"language" yaml:"language"`
	URL          string       `json:"url" yaml:"url"`
	Stars        int          `json:"stars" yaml:"stars"`
	LastModified *time.Time   `json:"last_modified" yaml:"last_modified"`
	Tags         []string     `json:"tags" yaml:"tags"`
	IsActive     *bool        `json:"is_active" yaml:"is_active"`
	Issues       []IssueInput `json:"issues" yaml:"issues"`
}
