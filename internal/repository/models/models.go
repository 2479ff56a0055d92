package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AnswerMap is the answers column (question id -> raw submitted answer)
// serialized as JSON text. Scanning is deliberately lenient: malformed stored
// data becomes an empty map so a single corrupt row cannot break a whole
// result view.
type AnswerMap map[string]string

// Value implements the driver.Valuer interface
func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (m *AnswerMap) Scan(value interface{}) error {
	raw, err := jsonColumnBytes(value)
	if err != nil {
		return err
	}
	if raw == nil {
		*m = AnswerMap{}
		return nil
	}
	var parsed map[string]string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		*m = AnswerMap{}
		return nil
	}
	*m = parsed
	return nil
}

// AnswerCheck mirrors the per-question correctness entry stored inside the
// correct_answers JSON column.
type AnswerCheck struct {
	CorrectAnswerText string `json:"correctAnswerText"`
	IsCorrect         bool   `json:"isCorrect"`
	NeedsReview       bool   `json:"needsReview,omitempty"`
}

// CheckMap is the correct_answers column (question id -> AnswerCheck).
// Same lenient scanning as AnswerMap.
type CheckMap map[string]AnswerCheck

// Value implements the driver.Valuer interface
func (m CheckMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (m *CheckMap) Scan(value interface{}) error {
	raw, err := jsonColumnBytes(value)
	if err != nil {
		return err
	}
	if raw == nil {
		*m = CheckMap{}
		return nil
	}
	var parsed map[string]AnswerCheck
	if err := json.Unmarshal(raw, &parsed); err != nil {
		*m = CheckMap{}
		return nil
	}
	*m = parsed
	return nil
}

// jsonColumnBytes normalizes a scanned JSON column to a byte slice, or nil
// when the column is NULL/empty.
func jsonColumnBytes(value interface{}) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil, errors.New("json column scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	return raw, nil
}

// User model
type User struct {
	ID                string         `db:"id"`
	GoogleID          string         `db:"google_id"`
	Email             string         `db:"email"`
	DisplayName       sql.NullString `db:"display_name"`
	ProfilePictureURL sql.NullString `db:"profile_picture_url"`
	Role              string         `db:"role"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
	DeletedAt         sql.NullTime   `db:"deleted_at"`
}

func (User) TableName() string {
	return "users"
}

// Quiz model
type Quiz struct {
	ID        string         `db:"id"`
	OwnerID   string         `db:"owner_id"`
	Title     string         `db:"title"`
	Subject   sql.NullString `db:"subject"`
	OpenTime  sql.NullTime   `db:"open_time"`
	CloseTime sql.NullTime   `db:"close_time"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt sql.NullTime   `db:"deleted_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question model. correct_answer holds the letter key for letter-keyed kinds;
// correct_text_answer holds the reference text for the free-text kinds.
// Exactly one is populated per row.
type Question struct {
	ID                string         `db:"id"`
	QuizID            string         `db:"quiz_id"`
	QuestionType      string         `db:"question_type"`
	QuestionText      string         `db:"question_text"`
	OptionA           sql.NullString `db:"option_a"`
	OptionB           sql.NullString `db:"option_b"`
	OptionC           sql.NullString `db:"option_c"`
	OptionD           sql.NullString `db:"option_d"`
	CorrectAnswer     sql.NullString `db:"correct_answer"`
	CorrectTextAnswer sql.NullString `db:"correct_text_answer"`
	Position          int            `db:"ordinal"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
	DeletedAt         sql.NullTime   `db:"deleted_at"`
}

func (Question) TableName() string {
	return "questions"
}

// QuizAttempt model; insert-only.
type QuizAttempt struct {
	ID               string    `db:"id"`
	UserID           string    `db:"user_id"`
	QuizID           string    `db:"quiz_id"`
	Score            int       `db:"score"`
	TotalQuestions   int       `db:"total_questions"`
	TimeTakenSeconds int       `db:"time_taken_seconds"`
	Answers          AnswerMap `db:"answers"`
	CorrectAnswers   CheckMap  `db:"correct_answers"`
	CompletedAt      time.Time `db:"completed_at"`
	CreatedAt        time.Time `db:"created_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
