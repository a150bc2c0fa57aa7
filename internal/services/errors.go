package services

import (
	"errors"
)

var (
	// Session errors
	ErrInvalidSession   = errors.New("session does not exist or is not in progress")
	ErrQuestionMismatch = errors.New("submitted question does not match the pending question")

	// Selection errors
	ErrNoQuestionsAvailable = errors.New("no questions available for any topic and tier")

	// Exercise errors
	ErrUnknownExerciseTopic = errors.New("no exercise templates registered for topic")

	// Generic errors
	ErrValidationFailed = errors.New("validation failed")
)

// IsNotFound reports whether err maps to a missing-resource condition at the
// HTTP boundary.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrInvalidSession) ||
		errors.Is(err, ErrUnknownExerciseTopic)
}

// IsConflict reports whether err is a structural misuse of an existing
// session rather than a missing resource.
func IsConflict(err error) bool {
	return errors.Is(err, ErrQuestionMismatch)
}
