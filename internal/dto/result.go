package dto

import "time"

// AnswerCheckResponse is the per-question outcome in a result view.
type AnswerCheckResponse struct {
	CorrectAnswerText string `json:"correct_answer_text"`
	IsCorrect         bool   `json:"is_correct"`
	NeedsReview       bool   `json:"needs_review,omitempty"`
}

// AttemptResponse is one scored attempt.
// @Description Scored quiz attempt
type AttemptResponse struct {
	ID               string                         `json:"id"`
	UserID           string                         `json:"user_id"`
	QuizID           string                         `json:"quiz_id"`
	Score            int                            `json:"score"`
	TotalQuestions   int                            `json:"total_questions"`
	TimeTakenSeconds int                            `json:"time_taken_seconds"`
	Answers          map[string]string              `json:"answers"`
	CorrectAnswers   map[string]AnswerCheckResponse `json:"correct_answers"`
	CompletedAt      time.Time                      `json:"completed_at"`
}

// AttemptListResponse is a page of a user's attempts.
type AttemptListResponse struct {
	Attempts []AttemptResponse `json:"attempts"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// LeaderboardEntryResponse is one leaderboard row.
type LeaderboardEntryResponse struct {
	Rank             int    `json:"rank"`
	UserID           string `json:"user_id"`
	DisplayName      string `json:"display_name"`
	Score            int    `json:"score"`
	TotalQuestions   int    `json:"total_questions"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
}

// LeaderboardResponse is the ranked best-attempt-per-user board for a quiz.
type LeaderboardResponse struct {
	QuizID  string                     `json:"quiz_id"`
	Entries []LeaderboardEntryResponse `json:"entries"`
}
