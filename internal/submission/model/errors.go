package model

import "github.com/festy23/fixthisbug/internal/apperr"

var (
	// ErrMissingFields indicates that a required submission field is empty.
	ErrMissingFields = apperr.Validation("All required fields must be filled")
	// ErrInvalidEmail indicates a submitter email without '@'.
	ErrInvalidEmail = apperr.Validation("Valid email is required")
	// ErrInvalidDifficulty indicates an unknown difficulty level.
	ErrInvalidDifficulty = apperr.Validation("Invalid difficulty level")
	// ErrInvalidStatus indicates a review decision other than approved or rejected.
	ErrInvalidStatus = apperr.InvalidStatus("Invalid status")
	// ErrSubmissionNotFound indicates that no submission has the requested id.
	ErrSubmissionNotFound = apperr.NotFound("Submission not found")
)
