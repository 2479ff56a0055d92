package domain

import (
	"fmt"
	"strings"
	"time"
)

// Quiz represents a named, ordered collection of questions with an optional
// availability window. Read-only to the session engine.
type Quiz struct {
	ID        string
	OwnerID   string
	Title     string
	Subject   string
	OpenTime  *time.Time
	CloseTime *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewQuiz creates a new Quiz instance
func NewQuiz(ownerID, title, subject string) *Quiz {
	now := time.Now()
	return &Quiz{
		OwnerID:   ownerID,
		Title:     title,
		Subject:   subject,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return NewInvalidInputError("title is required")
	}
	if q.OwnerID == "" {
		return NewInvalidInputError("owner ID is required")
	}
	if q.OpenTime != nil && q.CloseTime != nil && !q.OpenTime.Before(*q.CloseTime) {
		return NewInvalidInputError("open time must be before close time")
	}
	return nil
}

// AvailabilityStatus classifies a quiz's availability at a point in time.
type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityNotOpen   AvailabilityStatus = "not_open"
	AvailabilityClosed    AvailabilityStatus = "closed"
)

// Availability is the result of the window check. Message is user-facing;
// for an available quiz with a close time it carries the "closes at" note.
type Availability struct {
	Status  AvailabilityStatus
	Message string
}

// Open reports whether the quiz may be started.
func (a Availability) Open() bool {
	return a.Status == AvailabilityAvailable
}

const availabilityTimeLayout = "Jan 2, 2006 3:04 PM"

// AvailabilityAt evaluates the open/close window against now. Times are
// compared as wall-clock values; no timezone conversion is applied. The check
// runs once when a session is created and is not re-evaluated mid-attempt.
func (q *Quiz) AvailabilityAt(now time.Time) Availability {
	if q.OpenTime != nil && now.Before(*q.OpenTime) {
		return Availability{
			Status:  AvailabilityNotOpen,
			Message: fmt.Sprintf("This quiz opens at %s", q.OpenTime.Format(availabilityTimeLayout)),
		}
	}
	if q.CloseTime != nil && now.After(*q.CloseTime) {
		return Availability{
			Status:  AvailabilityClosed,
			Message: fmt.Sprintf("This quiz closed at %s", q.CloseTime.Format(availabilityTimeLayout)),
		}
	}
	if q.CloseTime != nil {
		return Availability{
			Status:  AvailabilityAvailable,
			Message: fmt.Sprintf("This quiz closes at %s", q.CloseTime.Format(availabilityTimeLayout)),
		}
	}
	return Availability{Status: AvailabilityAvailable}
}
