package domain

import (
	"strings"
	"time"
)

// QuestionKind enumerates the supported question types.
type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "multiple_choice"
	KindTrueFalse      QuestionKind = "true_false"
	KindFillBlank      QuestionKind = "fill_blank"
	KindIdentification QuestionKind = "identification"
	KindEssay          QuestionKind = "essay"
)

// ValidKind reports whether k is one of the supported question kinds.
func ValidKind(k QuestionKind) bool {
	switch k {
	case KindMultipleChoice, KindTrueFalse, KindFillBlank, KindIdentification, KindEssay:
		return true
	}
	return false
}

// CorrectAnswer is the tagged representation of a question's correctness
// marker. Letter-keyed kinds (multiple_choice, true_false) populate Letter;
// free-text kinds populate Text. Exactly one side is set per kind.
type CorrectAnswer struct {
	Letter string
	Text   string
}

// Question is one assessable item. Immutable during an attempt.
type Question struct {
	ID        string
	QuizID    string
	Kind      QuestionKind
	Text      string
	OptionA   string
	OptionB   string
	OptionC   string
	OptionD   string
	Correct   CorrectAnswer
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewQuestion creates a new Question instance
func NewQuestion(quizID string, kind QuestionKind, text string, position int) *Question {
	now := time.Now()
	return &Question{
		QuizID:    quizID,
		Kind:      kind,
		Text:      text,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the per-kind invariant: exactly one correctness
// representation is populated, and multiple choice carries four options.
func (q *Question) Validate() error {
	if q.QuizID == "" {
		return NewInvalidInputError("quiz ID is required")
	}
	if !ValidKind(q.Kind) {
		return NewInvalidInputError("unsupported question type: " + string(q.Kind))
	}
	if strings.TrimSpace(q.Text) == "" {
		return NewInvalidInputError("question text is required")
	}

	switch q.Kind {
	case KindMultipleChoice:
		if q.Correct.Text != "" {
			return NewInvalidInputError("multiple choice questions use a letter key, not a text answer")
		}
		letter := strings.ToUpper(strings.TrimSpace(q.Correct.Letter))
		if letter != "A" && letter != "B" && letter != "C" && letter != "D" {
			return NewInvalidInputError("correct answer must be one of A, B, C, D")
		}
		if q.OptionA == "" || q.OptionB == "" || q.OptionC == "" || q.OptionD == "" {
			return NewInvalidInputError("multiple choice questions require options A through D")
		}
	case KindTrueFalse:
		if q.Correct.Text != "" {
			return NewInvalidInputError("true/false questions use a letter key, not a text answer")
		}
		letter := strings.ToUpper(strings.TrimSpace(q.Correct.Letter))
		if letter != "A" && letter != "B" {
			return NewInvalidInputError("correct answer must be A (True) or B (False)")
		}
	case KindFillBlank, KindIdentification:
		if q.Correct.Letter != "" {
			return NewInvalidInputError(string(q.Kind) + " questions use a text answer, not a letter key")
		}
		if strings.TrimSpace(q.Correct.Text) == "" {
			return NewInvalidInputError("a reference answer is required")
		}
	case KindEssay:
		// The reference answer is optional for essays.
		if q.Correct.Letter != "" {
			return NewInvalidInputError("essay questions use a text answer, not a letter key")
		}
	}
	return nil
}

// CanonicalAnswer resolves the correct-answer string for scoring. A missing
// letter key or option text resolves to the empty string, never a failure.
func (q *Question) CanonicalAnswer() string {
	switch q.Kind {
	case KindMultipleChoice:
		switch strings.ToUpper(strings.TrimSpace(q.Correct.Letter)) {
		case "A":
			return q.OptionA
		case "B":
			return q.OptionB
		case "C":
			return q.OptionC
		case "D":
			return q.OptionD
		default:
			return ""
		}
	case KindTrueFalse:
		switch strings.ToUpper(strings.TrimSpace(q.Correct.Letter)) {
		case "A":
			return "True"
		case "B":
			return "False"
		default:
			return ""
		}
	default:
		return q.Correct.Text
	}
}
