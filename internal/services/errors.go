package services

import (
	"errors"
	"fmt"
)

// Typed domain errors. Handlers branch on these with errors.Is/As; none of
// them are ever swallowed inside the services.
var (
	ErrProfileNotFound      = errors.New("user profile not found")
	ErrInvalidRating        = errors.New("rating must be between 1 and 7")
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrAssessmentCompleted  = errors.New("assessment already completed")
	ErrAssessmentIncomplete = errors.New("assessment not completed yet")
	ErrNotOwner             = errors.New("assessment belongs to another user")
	ErrQuestionNotInSession = errors.New("question is not part of this assessment")
	ErrQuestionUnanswered   = errors.New("current question has no answer yet")
	ErrNoQuestions          = errors.New("question catalog is empty")
	ErrStateInUse           = errors.New("harmonic state is still referenced")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationExpired    = errors.New("invitation expired")
	ErrInvitationUsed       = errors.New("invitation already accepted")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)

// PersistenceError wraps a data-store failure. It is recoverable: the caller
// may retry the same operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Retryable() bool { return true }

func persistErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
