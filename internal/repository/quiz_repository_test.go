package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"quizroom/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "title", "subject", "open_time", "close_time",
		"created_at", "updated_at", "deleted_at",
	})
}

func questionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "quiz_id", "question_type", "question_text",
		"option_a", "option_b", "option_c", "option_d",
		"correct_answer", "correct_text_answer", "ordinal",
		"created_at", "updated_at", "deleted_at",
	})
}

func TestQuizRepository_GetQuizByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXQuizRepository(db)
	ctx := context.Background()
	now := time.Now()
	closeTime := now.Add(time.Hour)

	t.Run("Found", func(t *testing.T) {
		rows := quizRows().AddRow("quiz1", "owner1", "Geography", "Earth science", nil, closeTime, now, now, nil)
		mock.ExpectQuery("SELECT (.+) FROM quizzes WHERE id").
			WithArgs("quiz1").
			WillReturnRows(rows)

		quiz, err := repo.GetQuizByID(ctx, "quiz1")
		require.NoError(t, err)
		require.NotNil(t, quiz)
		assert.Equal(t, "Geography", quiz.Title)
		assert.Equal(t, "Earth science", quiz.Subject)
		assert.Nil(t, quiz.OpenTime)
		require.NotNil(t, quiz.CloseTime)
		assert.True(t, quiz.CloseTime.Equal(closeTime))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM quizzes WHERE id").
			WithArgs("missing").
			WillReturnRows(quizRows())

		quiz, err := repo.GetQuizByID(ctx, "missing")
		assert.NoError(t, err)
		assert.Nil(t, quiz)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuizRepository_GetQuestionsByQuizID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXQuizRepository(db)
	ctx := context.Background()
	now := time.Now()

	rows := questionRows().
		AddRow("q1", "quiz1", "multiple_choice", "Red planet?", "Venus", "Mars", "Jupiter", "Mercury", "B", nil, 0, now, now, nil).
		AddRow("q2", "quiz1", "fill_blank", "Capital of France is ____.", nil, nil, nil, nil, nil, "Paris", 1, now, now, nil)

	mock.ExpectQuery("FROM questions WHERE quiz_id").
		WithArgs("quiz1").
		WillReturnRows(rows)

	questions, err := repo.GetQuestionsByQuizID(ctx, "quiz1")
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, domain.KindMultipleChoice, questions[0].Kind)
	assert.Equal(t, "B", questions[0].Correct.Letter)
	assert.Empty(t, questions[0].Correct.Text)
	assert.Equal(t, "Mars", questions[0].OptionB)

	assert.Equal(t, domain.KindFillBlank, questions[1].Kind)
	assert.Equal(t, "Paris", questions[1].Correct.Text)
	assert.Empty(t, questions[1].Correct.Letter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_SaveQuiz(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXQuizRepository(db)
	ctx := context.Background()

	quiz := domain.NewQuiz("owner1", "Geography", "Earth science")
	quiz.ID = "quiz1"

	mock.ExpectExec("INSERT INTO quizzes").
		WithArgs("quiz1", "owner1", "Geography", "Earth science", nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveQuiz(ctx, quiz))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_UpdateQuiz(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXQuizRepository(db)
	ctx := context.Background()

	quiz := domain.NewQuiz("owner1", "Geography", "Earth science")
	quiz.ID = "quiz1"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE quizzes SET").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateQuiz(ctx, quiz))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoRowsAffected", func(t *testing.T) {
		mock.ExpectExec("UPDATE quizzes SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateQuiz(ctx, quiz)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuizRepository_DeleteQuiz(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXQuizRepository(db)
	ctx := context.Background()

	// Soft delete cascades to the quiz's questions.
	mock.ExpectExec("UPDATE quizzes SET deleted_at").
		WithArgs(sqlmock.AnyArg(), "quiz1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE questions SET deleted_at").
		WithArgs(sqlmock.AnyArg(), "quiz1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.DeleteQuiz(ctx, "quiz1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_SaveQuestion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXQuizRepository(db)
	ctx := context.Background()

	question := &domain.Question{
		ID: "q1", QuizID: "quiz1", Kind: domain.KindTrueFalse,
		Text:    "Water boils at 100C at sea level.",
		Correct: domain.CorrectAnswer{Letter: "A"},
	}

	mock.ExpectExec("INSERT INTO questions").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveQuestion(ctx, question))
	assert.NoError(t, mock.ExpectationsWereMet())
}
