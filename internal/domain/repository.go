package domain

import "context"

// QuizRepository defines the interface for quiz and question persistence.
// The session engine only reads through it; authoring writes through it.
type QuizRepository interface {
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
	GetQuestionsByQuizID(ctx context.Context, quizID string) ([]Question, error)
	ListQuizzes(ctx context.Context, limit, offset int) ([]Quiz, int, error)
	ListQuizzesByOwner(ctx context.Context, ownerID string) ([]Quiz, error)
	SaveQuiz(ctx context.Context, quiz *Quiz) error
	UpdateQuiz(ctx context.Context, quiz *Quiz) error
	DeleteQuiz(ctx context.Context, id string) error
	SaveQuestion(ctx context.Context, question *Question) error
	DeleteQuestion(ctx context.Context, id string) error
}

// LeaderboardEntry is one row of a quiz leaderboard: the user's best attempt,
// ties broken by the shorter time taken.
type LeaderboardEntry struct {
	UserID           string `json:"user_id"`
	DisplayName      string `json:"display_name"`
	Score            int    `json:"score"`
	TotalQuestions   int    `json:"total_questions"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
}

// AttemptRepository defines the interface for attempt persistence. Attempts
// are insert-only; there is no update path.
type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *Attempt) (string, error)
	GetAttemptByID(ctx context.Context, id string) (*Attempt, error)
	GetAttemptsByUser(ctx context.Context, userID string, limit, offset int) ([]Attempt, int, error)
	GetAttemptsByQuiz(ctx context.Context, quizID string) ([]Attempt, error)
	GetLatestAttempt(ctx context.Context, userID, quizID string) (*Attempt, error)
	GetBestAttempt(ctx context.Context, userID, quizID string) (*Attempt, error)
	GetLeaderboard(ctx context.Context, quizID string, limit int) ([]LeaderboardEntry, error)
}
