package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizroom/internal/domain"
	"quizroom/internal/repository/models"
	"quizroom/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXAttemptRepository creates a new instance of sqlxAttemptRepository.
func NewSQLXAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toDomainAttempt(m *models.QuizAttempt) *domain.Attempt {
	if m == nil {
		return nil
	}
	answers := make(map[string]string, len(m.Answers))
	for k, v := range m.Answers {
		answers[k] = v
	}
	checks := make(map[string]domain.AnswerCheck, len(m.CorrectAnswers))
	for k, v := range m.CorrectAnswers {
		checks[k] = domain.AnswerCheck{
			CorrectAnswerText: v.CorrectAnswerText,
			IsCorrect:         v.IsCorrect,
			NeedsReview:       v.NeedsReview,
		}
	}
	return &domain.Attempt{
		ID:               m.ID,
		UserID:           m.UserID,
		QuizID:           m.QuizID,
		Score:            m.Score,
		TotalQuestions:   m.TotalQuestions,
		TimeTakenSeconds: m.TimeTakenSeconds,
		Answers:          answers,
		CorrectAnswers:   checks,
		CompletedAt:      m.CompletedAt,
	}
}

func fromDomainAttempt(a *domain.Attempt) *models.QuizAttempt {
	if a == nil {
		return nil
	}
	answers := models.AnswerMap{}
	for k, v := range a.Answers {
		answers[k] = v
	}
	checks := models.CheckMap{}
	for k, v := range a.CorrectAnswers {
		checks[k] = models.AnswerCheck{
			CorrectAnswerText: v.CorrectAnswerText,
			IsCorrect:         v.IsCorrect,
			NeedsReview:       v.NeedsReview,
		}
	}
	return &models.QuizAttempt{
		ID:               a.ID,
		UserID:           a.UserID,
		QuizID:           a.QuizID,
		Score:            a.Score,
		TotalQuestions:   a.TotalQuestions,
		TimeTakenSeconds: a.TimeTakenSeconds,
		Answers:          answers,
		CorrectAnswers:   checks,
		CompletedAt:      a.CompletedAt,
	}
}

const attemptColumns = `id, user_id, quiz_id, score, total_questions, time_taken_seconds, answers, correct_answers, completed_at, created_at`

// CreateAttempt inserts a new attempt and returns its id. Attempts are never
// updated in place, so concurrent submissions cannot conflict.
func (r *sqlxAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.Attempt) (string, error) {
	m := fromDomainAttempt(attempt)
	if m.ID == "" {
		m.ID = util.NewULID()
	}
	if m.CompletedAt.IsZero() {
		m.CompletedAt = time.Now()
	}
	m.CreatedAt = time.Now()

	query := `INSERT INTO quiz_attempts (id, user_id, quiz_id, score, total_questions, time_taken_seconds, answers, correct_answers, completed_at, created_at)
	          VALUES (:id, :user_id, :quiz_id, :score, :total_questions, :time_taken_seconds, :answers, :correct_answers, :completed_at, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return "", fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	return m.ID, nil
}

// GetAttemptByID retrieves one attempt. Returns nil, nil when not found.
func (r *sqlxAttemptRepository) GetAttemptByID(ctx context.Context, id string) (*domain.Attempt, error) {
	var m models.QuizAttempt
	query := `SELECT ` + attemptColumns + ` FROM quiz_attempts WHERE id = $1`
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attempt by id: %w", err)
	}
	return toDomainAttempt(&m), nil
}

// GetAttemptsByUser retrieves a page of a user's attempts, newest first.
func (r *sqlxAttemptRepository) GetAttemptsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Attempt, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var modelAttempts []models.QuizAttempt
	query := `SELECT ` + attemptColumns + ` FROM quiz_attempts WHERE user_id = $1 ORDER BY completed_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &modelAttempts, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to get attempts for user %s: %w", userID, err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count attempts for user %s: %w", userID, err)
	}

	attempts := make([]domain.Attempt, 0, len(modelAttempts))
	for i := range modelAttempts {
		attempts = append(attempts, *toDomainAttempt(&modelAttempts[i]))
	}
	return attempts, total, nil
}

// GetAttemptsByQuiz retrieves every attempt for a quiz, newest first.
func (r *sqlxAttemptRepository) GetAttemptsByQuiz(ctx context.Context, quizID string) ([]domain.Attempt, error) {
	var modelAttempts []models.QuizAttempt
	query := `SELECT ` + attemptColumns + ` FROM quiz_attempts WHERE quiz_id = $1 ORDER BY completed_at DESC`
	if err := r.db.SelectContext(ctx, &modelAttempts, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to get attempts for quiz %s: %w", quizID, err)
	}

	attempts := make([]domain.Attempt, 0, len(modelAttempts))
	for i := range modelAttempts {
		attempts = append(attempts, *toDomainAttempt(&modelAttempts[i]))
	}
	return attempts, nil
}

// GetLatestAttempt returns the user's most recent attempt for a quiz, or
// nil, nil when there is none.
func (r *sqlxAttemptRepository) GetLatestAttempt(ctx context.Context, userID, quizID string) (*domain.Attempt, error) {
	var m models.QuizAttempt
	query := `SELECT ` + attemptColumns + ` FROM quiz_attempts
	          WHERE user_id = $1 AND quiz_id = $2 ORDER BY completed_at DESC LIMIT 1`
	if err := r.db.GetContext(ctx, &m, query, userID, quizID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest attempt: %w", err)
	}
	return toDomainAttempt(&m), nil
}

// GetBestAttempt returns the user's highest-scoring attempt for a quiz, ties
// broken by the shorter time taken. Returns nil, nil when there is none.
func (r *sqlxAttemptRepository) GetBestAttempt(ctx context.Context, userID, quizID string) (*domain.Attempt, error) {
	var m models.QuizAttempt
	query := `SELECT ` + attemptColumns + ` FROM quiz_attempts
	          WHERE user_id = $1 AND quiz_id = $2 ORDER BY score DESC, time_taken_seconds ASC LIMIT 1`
	if err := r.db.GetContext(ctx, &m, query, userID, quizID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get best attempt: %w", err)
	}
	return toDomainAttempt(&m), nil
}

// GetLeaderboard returns each user's best attempt for the quiz, ordered by
// score descending then time taken ascending.
func (r *sqlxAttemptRepository) GetLeaderboard(ctx context.Context, quizID string, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT best.user_id, COALESCE(u.display_name, '') AS display_name,
	                 best.score, best.total_questions, best.time_taken_seconds
	          FROM (
	              SELECT DISTINCT ON (user_id) user_id, score, total_questions, time_taken_seconds
	              FROM quiz_attempts
	              WHERE quiz_id = $1
	              ORDER BY user_id, score DESC, time_taken_seconds ASC
	          ) best
	          JOIN users u ON u.id = best.user_id
	          ORDER BY best.score DESC, best.time_taken_seconds ASC
	          LIMIT $2`

	rows, err := r.db.QueryxContext(ctx, query, quizID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard for quiz %s: %w", quizID, err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var entry domain.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.DisplayName, &entry.Score, &entry.TotalQuestions, &entry.TimeTakenSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard rows: %w", err)
	}
	return entries, nil
}
