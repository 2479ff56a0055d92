package domain

import "time"

// AnswerCheck records the per-question outcome of a scoring run.
// NeedsReview marks essay answers whose automatic exact-match result should
// be confirmed by a teacher before being trusted.
type AnswerCheck struct {
	CorrectAnswerText string `json:"correctAnswerText"`
	IsCorrect         bool   `json:"isCorrect"`
	NeedsReview       bool   `json:"needsReview,omitempty"`
}

// Attempt is the persisted result of one completed quiz run. Immutable once
// written; a user may hold any number of attempts for the same quiz.
type Attempt struct {
	ID               string
	UserID           string
	QuizID           string
	Score            int
	TotalQuestions   int
	TimeTakenSeconds int
	Answers          map[string]string
	CorrectAnswers   map[string]AnswerCheck
	CompletedAt      time.Time
}

// Validate checks the score bounds invariant.
func (a *Attempt) Validate() error {
	if a.UserID == "" {
		return NewInvalidInputError("user ID is required")
	}
	if a.QuizID == "" {
		return NewInvalidInputError("quiz ID is required")
	}
	if a.Score < 0 || a.Score > a.TotalQuestions {
		return NewInvalidInputError("score must be between 0 and the question count")
	}
	return nil
}
