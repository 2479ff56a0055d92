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

// sqlxQuizRepository implements domain.QuizRepository using sqlx.
type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRepository creates a new instance of sqlxQuizRepository.
func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	return &domain.Quiz{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Title:     m.Title,
		Subject:   m.Subject.String,
		OpenTime:  util.NullTimeToPtr(m.OpenTime),
		CloseTime: util.NullTimeToPtr(m.CloseTime),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDomainQuiz(q *domain.Quiz) *models.Quiz {
	if q == nil {
		return nil
	}
	return &models.Quiz{
		ID:        q.ID,
		OwnerID:   q.OwnerID,
		Title:     q.Title,
		Subject:   util.StringToNullString(q.Subject),
		OpenTime:  util.PtrToNullTime(q.OpenTime),
		CloseTime: util.PtrToNullTime(q.CloseTime),
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:      m.ID,
		QuizID:  m.QuizID,
		Kind:    domain.QuestionKind(m.QuestionType),
		Text:    m.QuestionText,
		OptionA: m.OptionA.String,
		OptionB: m.OptionB.String,
		OptionC: m.OptionC.String,
		OptionD: m.OptionD.String,
		Correct: domain.CorrectAnswer{
			Letter: m.CorrectAnswer.String,
			Text:   m.CorrectTextAnswer.String,
		},
		Position:  m.Position,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDomainQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	return &models.Question{
		ID:                q.ID,
		QuizID:            q.QuizID,
		QuestionType:      string(q.Kind),
		QuestionText:      q.Text,
		OptionA:           util.StringToNullString(q.OptionA),
		OptionB:           util.StringToNullString(q.OptionB),
		OptionC:           util.StringToNullString(q.OptionC),
		OptionD:           util.StringToNullString(q.OptionD),
		CorrectAnswer:     util.StringToNullString(q.Correct.Letter),
		CorrectTextAnswer: util.StringToNullString(q.Correct.Text),
		Position:          q.Position,
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
	}
}

// GetQuizByID retrieves a quiz by its ID. Returns nil, nil when not found.
func (r *sqlxQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var m models.Quiz
	query := `SELECT id, owner_id, title, subject, open_time, close_time, created_at, updated_at, deleted_at
	          FROM quizzes WHERE id = $1 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by id: %w", err)
	}
	return toDomainQuiz(&m), nil
}

// GetQuestionsByQuizID returns the quiz's questions in their fixed order.
func (r *sqlxQuizRepository) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]domain.Question, error) {
	var modelQuestions []models.Question
	query := `SELECT id, quiz_id, question_type, question_text, option_a, option_b, option_c, option_d,
	                 correct_answer, correct_text_answer, ordinal, created_at, updated_at, deleted_at
	          FROM questions WHERE quiz_id = $1 AND deleted_at IS NULL ORDER BY ordinal ASC`

	if err := r.db.SelectContext(ctx, &modelQuestions, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", quizID, err)
	}

	questions := make([]domain.Question, 0, len(modelQuestions))
	for i := range modelQuestions {
		questions = append(questions, *toDomainQuestion(&modelQuestions[i]))
	}
	return questions, nil
}

// ListQuizzes returns a page of quizzes and the total count.
func (r *sqlxQuizRepository) ListQuizzes(ctx context.Context, limit, offset int) ([]domain.Quiz, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var modelQuizzes []models.Quiz
	query := `SELECT id, owner_id, title, subject, open_time, close_time, created_at, updated_at, deleted_at
	          FROM quizzes WHERE deleted_at IS NULL ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &modelQuizzes, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list quizzes: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM quizzes WHERE deleted_at IS NULL`); err != nil {
		return nil, 0, fmt.Errorf("failed to count quizzes: %w", err)
	}

	quizzes := make([]domain.Quiz, 0, len(modelQuizzes))
	for i := range modelQuizzes {
		quizzes = append(quizzes, *toDomainQuiz(&modelQuizzes[i]))
	}
	return quizzes, total, nil
}

// ListQuizzesByOwner returns all quizzes authored by one teacher.
func (r *sqlxQuizRepository) ListQuizzesByOwner(ctx context.Context, ownerID string) ([]domain.Quiz, error) {
	var modelQuizzes []models.Quiz
	query := `SELECT id, owner_id, title, subject, open_time, close_time, created_at, updated_at, deleted_at
	          FROM quizzes WHERE owner_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &modelQuizzes, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list quizzes for owner %s: %w", ownerID, err)
	}

	quizzes := make([]domain.Quiz, 0, len(modelQuizzes))
	for i := range modelQuizzes {
		quizzes = append(quizzes, *toDomainQuiz(&modelQuizzes[i]))
	}
	return quizzes, nil
}

// SaveQuiz inserts a new quiz.
func (r *sqlxQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	m := fromDomainQuiz(quiz)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = time.Now()

	query := `INSERT INTO quizzes (id, owner_id, title, subject, open_time, close_time, created_at, updated_at)
	          VALUES (:id, :owner_id, :title, :subject, :open_time, :close_time, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

// UpdateQuiz updates an existing quiz's metadata and window.
func (r *sqlxQuizRepository) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	m := fromDomainQuiz(quiz)
	m.UpdatedAt = time.Now()

	query := `UPDATE quizzes SET
	            title = :title,
	            subject = :subject,
	            open_time = :open_time,
	            close_time = :close_time,
	            updated_at = :updated_at
	          WHERE id = :id AND deleted_at IS NULL`
	result, err := r.db.NamedExecContext(ctx, query, m)
	if err != nil {
		return fmt.Errorf("failed to update quiz: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteQuiz soft-deletes a quiz and its questions.
func (r *sqlxQuizRepository) DeleteQuiz(ctx context.Context, id string) error {
	now := time.Now()
	if _, err := r.db.ExecContext(ctx, `UPDATE quizzes SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`, now, id); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE questions SET deleted_at = $1 WHERE quiz_id = $2 AND deleted_at IS NULL`, now, id); err != nil {
		return fmt.Errorf("failed to delete quiz questions: %w", err)
	}
	return nil
}

// SaveQuestion inserts a new question.
func (r *sqlxQuizRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	m := fromDomainQuestion(question)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = time.Now()

	query := `INSERT INTO questions (id, quiz_id, question_type, question_text, option_a, option_b, option_c, option_d,
	                                 correct_answer, correct_text_answer, ordinal, created_at, updated_at)
	          VALUES (:id, :quiz_id, :question_type, :question_text, :option_a, :option_b, :option_c, :option_d,
	                  :correct_answer, :correct_text_answer, :ordinal, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// DeleteQuestion soft-deletes a question.
func (r *sqlxQuizRepository) DeleteQuestion(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE questions SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`, time.Now(), id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return nil
}
