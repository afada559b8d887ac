package model

import "github.com/festy23/fixthisbug/internal/apperr"

var (
	// ErrInvalidEmail indicates a missing email or one without '@'.
	ErrInvalidEmail = apperr.Validation("Valid email is required")
	// ErrEmailRequired indicates an unsubscribe request without email.
	ErrEmailRequired = apperr.Validation("Email is required")
	// ErrAlreadySubscribed indicates the email already has an active subscription.
	ErrAlreadySubscribed = apperr.Validation("Email already subscribed")
	// ErrInvalidFrequency indicates an unknown notification frequency.
	ErrInvalidFrequency = apperr.Validation("Invalid notification frequency")
	// ErrSubscriberNotFound indicates that no subscriber has the email.
	ErrSubscriberNotFound = apperr.NotFound("Subscriber not found")
	// ErrDuplicateEmail indicates a concurrent insert of the same email.
	ErrDuplicateEmail = apperr.Conflict("Subscriber was created concurrently, please retry")
	// ErrSubscriberChanged indicates the subscriber was reactivated by a concurrent request.
	ErrSubscriberChanged = apperr.Conflict("Subscriber was modified concurrently, please retry")
)
