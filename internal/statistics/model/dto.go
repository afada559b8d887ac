// Package model provides data transfer objects for statistics module.
package model

// CatalogStatistics aggregates the active part of the catalog.
type CatalogStatistics struct {
	ActiveRepositories int64 `json:"active_repositories"`
	Languages          int64 `json:"languages"`
	Issues             int64 `json:"issues"`
}

// SubmissionStatistics counts submissions per moderation status.
type SubmissionStatistics struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// StatisticsResponse is the body of GET /api/statistics.
type StatisticsResponse struct {
	Catalog           CatalogStatistics    `json:"catalog"`
	Submissions       SubmissionStatistics `json:"submissions"`
	ActiveSubscribers int64                `json:"active_subscribers"`
}
