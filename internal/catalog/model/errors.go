package model

import "github.com/festy23/fixthisbug/internal/apperr"

var (
	// ErrRepositoryNotFound indicates that no repository has the requested id.
	ErrRepositoryNotFound = apperr.NotFound("Repository not found")
	// ErrMissingFields indicates that a required repository field is empty.
	ErrMissingFields = apperr.Validation("Missing required fields")
	// ErrNegativeStars indicates a star count below zero.
	ErrNegativeStars = apperr.Validation("Stars must be non-negative")
	// ErrInvalidIssue indicates an issue without title or url.
	ErrInvalidIssue = apperr.Validation("Each issue requires a title and url")
	// ErrInvalidDifficulty indicates an unknown difficulty level.
	ErrInvalidDifficulty = apperr.Validation("Invalid difficulty level")
	// ErrInvalidIssueStatus indicates an unknown issue status.
	ErrInvalidIssueStatus = apperr.Validation("Invalid issue status")
	// ErrNegativeComments indicates a comment count below zero.
	ErrNegativeComments = apperr.Validation("Comments count must be non-negative")
	// ErrDuplicateGitHubID indicates that another repository owns the github_id.
	ErrDuplicateGitHubID = apperr.Conflict("Repository with this github_id already exists")
	// ErrConcurrentUpdate indicates the repository changed since it was read.
	ErrConcurrentUpdate = apperr.Conflict("Repository was modified concurrently, please retry")
	// ErrStarsUnavailable indicates that no GitHub client is configured.
	ErrStarsUnavailable = apperr.Validation("Star refresh is not configured")
)
