package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrForbidden    ErrorCode = "FORBIDDEN"

	// Quiz and session specific errors
	ErrQuizNotFound      ErrorCode = "QUIZ_NOT_FOUND"
	ErrQuizLoadFailure   ErrorCode = "QUIZ_LOAD_FAILURE"
	ErrQuizNotAvailable  ErrorCode = "QUIZ_NOT_AVAILABLE"
	ErrSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
	ErrSessionState      ErrorCode = "INVALID_SESSION_STATE"
	ErrSubmissionFailure ErrorCode = "SUBMISSION_FAILURE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(ErrForbidden, message, nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(ErrQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

// NewLoadFailureError wraps a failed or empty question fetch; the session
// never enters InProgress when this is returned.
func NewLoadFailureError(quizID string, err error) *DomainError {
	return NewError(ErrQuizLoadFailure, fmt.Sprintf("Failed to load quiz %s", quizID), err)
}

// NewQuizNotAvailableError carries the user-facing availability reason.
// This is a policy rejection, not a fault.
func NewQuizNotAvailableError(message string) *DomainError {
	return NewError(ErrQuizNotAvailable, message, nil)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(ErrSessionNotFound, fmt.Sprintf("Session not found with ID: %s", sessionID), nil)
}

func NewSessionStateError(message string) *DomainError {
	return NewError(ErrSessionState, message, nil)
}

// NewSubmissionFailureError preserves attempt state: the caller returns the
// session to InProgress and the user re-triggers submit.
func NewSubmissionFailureError(err error) *DomainError {
	return NewError(ErrSubmissionFailure, "Failed to persist quiz attempt", err)
}
