package session

import (
	"context"
	"sync"
	"time"

	"quizroom/internal/domain"
	"quizroom/internal/logger"

	"go.uber.org/zap"
)

// State is the lifecycle state of one quiz attempt.
type State string

const (
	StateNotStarted  State = "not_started"
	StateInProgress  State = "in_progress"
	StateSubmitting  State = "submitting"
	StateSubmitted   State = "submitted"
	StateUnavailable State = "unavailable"
)

// AttemptSink persists a completed attempt and returns the created record id.
type AttemptSink interface {
	SaveAttempt(ctx context.Context, attempt *domain.Attempt) (string, error)
}

// IdentityProvider supplies the acting user's id at submission time.
type IdentityProvider interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// Options configures a new Engine.
type Options struct {
	Countdowns  Countdowns
	Sink        AttemptSink
	Identity    IdentityProvider
	Clock       func() time.Time          // defaults to time.Now
	OnSubmitted func(*domain.Attempt)     // invoked after a successful persist
}

// Engine owns the lifecycle of one quiz attempt: question sequencing, the
// per-question countdown, answer capture, and submission. One engine instance
// is one attempt; it is discarded after Submitted or on abandonment.
//
// At most one countdown runs at a time. The ticker goroutine is tagged with a
// generation number; arming a new countdown bumps the generation so a stale
// goroutine that fires after disarm is a no-op.
type Engine struct {
	id         string
	quiz       *domain.Quiz
	questions  []domain.Question
	countdowns Countdowns
	sink       AttemptSink
	identity   IdentityProvider
	now        func() time.Time
	onSubmit   func(*domain.Attempt)

	mu           sync.Mutex
	state        State
	availability domain.Availability
	current      int
	answers      map[string]string
	remaining    int
	startedAt    time.Time
	autoSubmit   bool
	attemptID    string
	lastErr      error

	timerGen    uint64
	timerCancel context.CancelFunc
	manualTimer bool // test-only: skip the ticker goroutine, drive tick directly
}

// NewEngine builds an engine in NotStarted, or Unavailable when the quiz's
// window excludes now. The question order is fixed here and never reshuffled.
func NewEngine(id string, quiz *domain.Quiz, questions []domain.Question, opts Options) (*Engine, error) {
	if len(questions) == 0 {
		return nil, domain.NewLoadFailureError(quiz.ID, nil)
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	countdowns := opts.Countdowns
	if countdowns == nil {
		countdowns = DefaultCountdowns()
	}

	e := &Engine{
		id:         id,
		quiz:       quiz,
		questions:  questions,
		countdowns: countdowns,
		sink:       opts.Sink,
		identity:   opts.Identity,
		now:        clock,
		onSubmit:   opts.OnSubmitted,
		state:      StateNotStarted,
		answers:    make(map[string]string),
	}

	e.availability = quiz.AvailabilityAt(clock())
	if !e.availability.Open() {
		e.state = StateUnavailable
	}
	return e, nil
}

// ID returns the session id.
func (e *Engine) ID() string {
	return e.id
}

// Start moves NotStarted to InProgress and arms the countdown for question 0.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateUnavailable:
		return domain.NewQuizNotAvailableError(e.availability.Message)
	case StateNotStarted:
	default:
		return domain.NewSessionStateError("session already started")
	}

	e.state = StateInProgress
	e.current = 0
	e.answers = make(map[string]string)
	e.startedAt = e.now()
	e.armLocked()
	return nil
}

// Answer records or overwrites the answer for a question. Allowed any number
// of times while InProgress; never touches the countdown.
func (e *Engine) Answer(questionID, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateInProgress {
		return domain.NewSessionStateError("answers can only be recorded while the quiz is in progress")
	}
	if !e.hasQuestion(questionID) {
		return domain.NewNotFoundError("question does not belong to this quiz")
	}
	e.answers[questionID] = value
	return nil
}

// Next advances to the following question with a fresh countdown.
func (e *Engine) Next() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateInProgress {
		return domain.NewSessionStateError("session is not in progress")
	}
	if e.current >= len(e.questions)-1 {
		return domain.NewSessionStateError("already at the last question")
	}
	e.advanceLocked(1)
	return nil
}

// Previous steps back one question. The countdown re-arms at the full budget
// for that question; remaining time is intentionally not restored.
func (e *Engine) Previous() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateInProgress {
		return domain.NewSessionStateError("session is not in progress")
	}
	if e.current <= 0 {
		return domain.NewSessionStateError("already at the first question")
	}
	e.advanceLocked(-1)
	return nil
}

// Submit finalizes the attempt: scores the captured answers, resolves the
// acting user, and persists the record. On persistence or identity failure the
// session returns to InProgress at the same question with a fresh countdown
// and the answers intact; the caller must re-trigger submit.
func (e *Engine) Submit(ctx context.Context) (*domain.Attempt, error) {
	e.mu.Lock()
	if e.state != StateInProgress {
		state := e.state
		e.mu.Unlock()
		if state == StateSubmitting {
			return nil, domain.NewSessionStateError("submission already in flight")
		}
		return nil, domain.NewSessionStateError("session is not in progress")
	}
	e.beginSubmitLocked(false)
	e.mu.Unlock()

	return e.finishSubmit(ctx)
}

// Close abandons the session and cancels its countdown. Nothing is persisted.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disarmLocked()
}

func (e *Engine) hasQuestion(questionID string) bool {
	for i := range e.questions {
		if e.questions[i].ID == questionID {
			return true
		}
	}
	return false
}

// advanceLocked moves the index by exactly one and arms a fresh countdown
// sized by the now-current question's kind.
func (e *Engine) advanceLocked(delta int) {
	e.current += delta
	e.armLocked()
}

// armLocked is one of the two timer operations. It replaces any running
// countdown with a fresh one for the current question.
func (e *Engine) armLocked() {
	e.disarmLocked()
	e.remaining = e.countdowns.For(e.questions[e.current].Kind)
	e.timerGen++

	if e.manualTimer {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.timerCancel = cancel
	go e.runTimer(ctx, e.timerGen)
}

// disarmLocked is the other timer operation. Cancelling plus the generation
// bump in armLocked guarantees at most one live countdown.
func (e *Engine) disarmLocked() {
	if e.timerCancel != nil {
		e.timerCancel()
		e.timerCancel = nil
	}
}

func (e *Engine) runTimer(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if e.tick(gen) {
				return
			}
		}
	}
}

// tick consumes one second of the current question's budget. It reports true
// when this timer generation is finished (stale, expired, or replaced).
func (e *Engine) tick(gen uint64) bool {
	e.mu.Lock()

	if gen != e.timerGen || e.state != StateInProgress {
		e.mu.Unlock()
		return true
	}

	e.remaining--
	if e.remaining > 0 {
		e.mu.Unlock()
		return false
	}

	// Timeout: behave like manual next, or auto-submit on the last question.
	if e.current < len(e.questions)-1 {
		e.advanceLocked(1)
		e.mu.Unlock()
		return true
	}

	e.beginSubmitLocked(true)
	e.mu.Unlock()

	go func() {
		if _, err := e.finishSubmit(context.Background()); err != nil {
			logger.Get().Warn("Auto-submit failed; session returned to in_progress",
				zap.String("sessionID", e.id),
				zap.String("quizID", e.quiz.ID),
				zap.Error(err))
		}
	}()
	return true
}

func (e *Engine) beginSubmitLocked(auto bool) {
	e.disarmLocked()
	e.timerGen++
	e.autoSubmit = auto
	e.state = StateSubmitting
	e.lastErr = nil
}

func (e *Engine) finishSubmit(ctx context.Context) (*domain.Attempt, error) {
	e.mu.Lock()
	answers := make(map[string]string, len(e.answers))
	for k, v := range e.answers {
		answers[k] = v
	}
	startedAt := e.startedAt
	completedAt := e.now()
	e.mu.Unlock()

	result := domain.ScoreAttempt(e.questions, answers, startedAt, completedAt)
	attempt := &domain.Attempt{
		QuizID:           e.quiz.ID,
		Score:            result.Score,
		TotalQuestions:   result.TotalQuestions,
		TimeTakenSeconds: result.TimeTakenSeconds,
		Answers:          answers,
		CorrectAnswers:   result.CorrectAnswers,
		CompletedAt:      completedAt,
	}

	userID, err := e.identity.CurrentUserID(ctx)
	if err != nil {
		return nil, e.failSubmit(domain.NewSubmissionFailureError(err))
	}
	attempt.UserID = userID

	id, err := e.sink.SaveAttempt(ctx, attempt)
	if err != nil {
		return nil, e.failSubmit(domain.NewSubmissionFailureError(err))
	}
	attempt.ID = id

	e.mu.Lock()
	e.state = StateSubmitted
	e.attemptID = id
	e.mu.Unlock()

	if e.onSubmit != nil {
		e.onSubmit(attempt)
	}
	return attempt, nil
}

// failSubmit returns the session to InProgress at the same question with a
// full fresh countdown. Answers are untouched.
func (e *Engine) failSubmit(err error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateSubmitting {
		e.state = StateInProgress
		e.lastErr = err
		e.armLocked()
	}
	return err
}
