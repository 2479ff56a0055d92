package dto

// StartSessionRequest opens a new attempt for a quiz.
// @Description Request body for starting a quiz session
type StartSessionRequest struct {
	QuizID string `json:"quiz_id"`
}

// SessionAnswerRequest records an answer for a question in a live session.
type SessionAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// SessionQuestion is the client-safe view of the active question.
type SessionQuestion struct {
	ID           string `json:"id"`
	QuestionType string `json:"question_type"`
	QuestionText string `json:"question_text"`
	OptionA      string `json:"option_a,omitempty"`
	OptionB      string `json:"option_b,omitempty"`
	OptionC      string `json:"option_c,omitempty"`
	OptionD      string `json:"option_d,omitempty"`
}

// SessionResponse is the session state returned after every session action.
// RemainingPercent is RemainingSeconds over the full budget for the current
// question, for client countdown display.
type SessionResponse struct {
	SessionID           string            `json:"session_id"`
	State               string            `json:"state"`
	QuizID              string            `json:"quiz_id"`
	QuizTitle           string            `json:"quiz_title"`
	CurrentIndex        int               `json:"current_index"`
	TotalQuestions      int               `json:"total_questions"`
	RemainingSeconds    int               `json:"remaining_seconds"`
	RemainingPercent    float64           `json:"remaining_percent"`
	Question            *SessionQuestion  `json:"question,omitempty"`
	Answers             map[string]string `json:"answers"`
	AutoSubmit          bool              `json:"auto_submit,omitempty"`
	AttemptID           string            `json:"attempt_id,omitempty"`
	AvailabilityMessage string            `json:"availability_message,omitempty"`
	LastSubmissionError string            `json:"last_submission_error,omitempty"`
}
