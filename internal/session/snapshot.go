package session

import "quizroom/internal/domain"

// QuestionView is the client-safe projection of the current question. The
// correctness marker never leaves the engine while an attempt is live.
type QuestionView struct {
	ID      string              `json:"id"`
	Kind    domain.QuestionKind `json:"question_type"`
	Text    string              `json:"question_text"`
	OptionA string              `json:"option_a,omitempty"`
	OptionB string              `json:"option_b,omitempty"`
	OptionC string              `json:"option_c,omitempty"`
	OptionD string              `json:"option_d,omitempty"`
}

// Snapshot is a point-in-time copy of the session for the API layer.
type Snapshot struct {
	ID                  string
	State               State
	QuizID              string
	QuizTitle           string
	CurrentIndex        int
	TotalQuestions      int
	RemainingSeconds    int
	CountdownSeconds    int
	AutoSubmit          bool
	AttemptID           string
	Availability        domain.Availability
	Answers             map[string]string
	CurrentQuestion     *QuestionView
	LastSubmissionError string
}

// Snapshot returns a consistent copy of the engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	answers := make(map[string]string, len(e.answers))
	for k, v := range e.answers {
		answers[k] = v
	}

	snap := Snapshot{
		ID:             e.id,
		State:          e.state,
		QuizID:         e.quiz.ID,
		QuizTitle:      e.quiz.Title,
		CurrentIndex:   e.current,
		TotalQuestions: len(e.questions),
		AutoSubmit:     e.autoSubmit,
		AttemptID:      e.attemptID,
		Availability:   e.availability,
		Answers:        answers,
	}
	if e.lastErr != nil {
		snap.LastSubmissionError = e.lastErr.Error()
	}

	if e.state == StateInProgress || e.state == StateSubmitting {
		q := &e.questions[e.current]
		snap.RemainingSeconds = e.remaining
		snap.CountdownSeconds = e.countdowns.For(q.Kind)
		view := &QuestionView{
			ID:   q.ID,
			Kind: q.Kind,
			Text: q.Text,
		}
		if q.Kind == domain.KindMultipleChoice {
			view.OptionA = q.OptionA
			view.OptionB = q.OptionB
			view.OptionC = q.OptionC
			view.OptionD = q.OptionD
		}
		snap.CurrentQuestion = view
	}
	return snap
}
