package dto

import "time"

// CreateQuizRequest is the authoring payload for a new quiz.
// @Description Request body for creating a quiz
type CreateQuizRequest struct {
	Title     string     `json:"title"`
	Subject   string     `json:"subject,omitempty"`
	OpenTime  *time.Time `json:"open_time,omitempty"`
	CloseTime *time.Time `json:"close_time,omitempty"`
}

// UpdateQuizRequest mirrors CreateQuizRequest for edits.
type UpdateQuizRequest struct {
	Title     string     `json:"title"`
	Subject   string     `json:"subject,omitempty"`
	OpenTime  *time.Time `json:"open_time,omitempty"`
	CloseTime *time.Time `json:"close_time,omitempty"`
}

// QuestionRequest is the authoring payload for one question.
type QuestionRequest struct {
	QuestionType      string `json:"question_type"`
	QuestionText      string `json:"question_text"`
	OptionA           string `json:"option_a,omitempty"`
	OptionB           string `json:"option_b,omitempty"`
	OptionC           string `json:"option_c,omitempty"`
	OptionD           string `json:"option_d,omitempty"`
	CorrectAnswer     string `json:"correct_answer,omitempty"`
	CorrectTextAnswer string `json:"correct_text_answer,omitempty"`
	Position          int    `json:"position"`
}

// QuizResponse represents a quiz in the API response
// @Description Quiz information
type QuizResponse struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"owner_id"`
	Title     string     `json:"title"`
	Subject   string     `json:"subject,omitempty"`
	OpenTime  *time.Time `json:"open_time,omitempty"`
	CloseTime *time.Time `json:"close_time,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// QuestionResponse is the owner-facing question view, correctness included.
type QuestionResponse struct {
	ID                string `json:"id"`
	QuizID            string `json:"quiz_id"`
	QuestionType      string `json:"question_type"`
	QuestionText      string `json:"question_text"`
	OptionA           string `json:"option_a,omitempty"`
	OptionB           string `json:"option_b,omitempty"`
	OptionC           string `json:"option_c,omitempty"`
	OptionD           string `json:"option_d,omitempty"`
	CorrectAnswer     string `json:"correct_answer,omitempty"`
	CorrectTextAnswer string `json:"correct_text_answer,omitempty"`
	Position          int    `json:"position"`
}

// QuizDetailResponse bundles a quiz with its questions for the owner view.
type QuizDetailResponse struct {
	Quiz      QuizResponse       `json:"quiz"`
	Questions []QuestionResponse `json:"questions"`
}

// QuizListResponse is a page of quizzes.
type QuizListResponse struct {
	Quizzes []QuizResponse `json:"quizzes"`
	Total   int            `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
