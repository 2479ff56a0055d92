package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizroom/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSink struct {
	saveFn func(ctx context.Context, attempt *domain.Attempt) (string, error)
	saved  []*domain.Attempt
}

func (s *stubSink) SaveAttempt(ctx context.Context, attempt *domain.Attempt) (string, error) {
	s.saved = append(s.saved, attempt)
	if s.saveFn != nil {
		return s.saveFn(ctx, attempt)
	}
	return "attempt-1", nil
}

type stubIdentity struct {
	userID string
	err    error
}

func (s stubIdentity) CurrentUserID(ctx context.Context) (string, error) {
	return s.userID, s.err
}

func testQuestions() []domain.Question {
	return []domain.Question{
		{
			ID: "q1", QuizID: "quiz1", Kind: domain.KindMultipleChoice,
			Text:    "Which planet is known as the Red Planet?",
			OptionA: "Venus", OptionB: "Mars", OptionC: "Jupiter", OptionD: "Mercury",
			Correct: domain.CorrectAnswer{Letter: "B"},
		},
		{
			ID: "q2", QuizID: "quiz1", Kind: domain.KindTrueFalse,
			Text:    "Water boils at 100C at sea level.",
			Correct: domain.CorrectAnswer{Letter: "A"},
		},
		{
			ID: "q3", QuizID: "quiz1", Kind: domain.KindFillBlank,
			Text:    "The capital of France is ____.",
			Correct: domain.CorrectAnswer{Text: "Paris"},
		},
	}
}

// newTestEngine builds an engine whose countdown is driven manually through
// tick, so tests never wait on a real ticker.
func newTestEngine(t *testing.T, quiz *domain.Quiz, sink AttemptSink, opts Options) *Engine {
	t.Helper()
	if quiz == nil {
		quiz = &domain.Quiz{ID: "quiz1", Title: "Geography"}
	}
	if sink == nil {
		sink = &stubSink{}
	}
	opts.Sink = sink
	if opts.Identity == nil {
		opts.Identity = stubIdentity{userID: "user1"}
	}
	e, err := NewEngine("sess1", quiz, testQuestions(), opts)
	require.NoError(t, err)
	e.manualTimer = true
	return e
}

func TestNewEngine_EmptyQuestions(t *testing.T) {
	quiz := &domain.Quiz{ID: "quiz1", Title: "Empty"}
	_, err := NewEngine("sess1", quiz, nil, Options{Sink: &stubSink{}, Identity: stubIdentity{userID: "u"}})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrQuizLoadFailure, domainErr.Code)
}

func TestEngine_UnavailableQuiz(t *testing.T) {
	closeTime := time.Now().Add(-time.Hour)
	quiz := &domain.Quiz{ID: "quiz1", Title: "Closed", CloseTime: &closeTime}
	e := newTestEngine(t, quiz, nil, Options{})

	snap := e.Snapshot()
	assert.Equal(t, StateUnavailable, snap.State)
	assert.Equal(t, domain.AvailabilityClosed, snap.Availability.Status)
	assert.Zero(t, e.timerGen, "no countdown is ever armed for an unavailable quiz")

	err := e.Start()
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrQuizNotAvailable, domainErr.Code)
	assert.Contains(t, domainErr.Message, "closed at")
	assert.Zero(t, e.timerGen)
}

func TestEngine_StartArmsFirstQuestion(t *testing.T) {
	e := newTestEngine(t, nil, nil, Options{})

	require.NoError(t, e.Start())

	snap := e.Snapshot()
	assert.Equal(t, StateInProgress, snap.State)
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.Equal(t, 20, snap.RemainingSeconds, "multiple choice budget")
	assert.Equal(t, 20, snap.CountdownSeconds)
	require.NotNil(t, snap.CurrentQuestion)
	assert.Equal(t, "q1", snap.CurrentQuestion.ID)
	assert.Equal(t, "Mars", snap.CurrentQuestion.OptionB)

	assert.Error(t, e.Start(), "double start is rejected")
}

func TestEngine_SnapshotHidesCorrectness(t *testing.T) {
	e := newTestEngine(t, nil, nil, Options{})
	require.NoError(t, e.Start())

	snap := e.Snapshot()
	require.NotNil(t, snap.CurrentQuestion)
	// QuestionView carries no correctness fields at all; options only appear
	// for multiple choice.
	require.NoError(t, e.Next())
	snap = e.Snapshot()
	assert.Equal(t, "q2", snap.CurrentQuestion.ID)
	assert.Empty(t, snap.CurrentQuestion.OptionA)
}

func TestEngine_AnswerCapture(t *testing.T) {
	e := newTestEngine(t, nil, nil, Options{})

	err := e.Answer("q1", "Mars")
	assert.Error(t, err, "answers are rejected before start")

	require.NoError(t, e.Start())
	require.NoError(t, e.Answer("q1", "Venus"))
	require.NoError(t, e.Answer("q1", "Mars"), "overwrites are allowed")
	require.NoError(t, e.Answer("q3", "paris"), "any question may be answered, not just the current one")

	err = e.Answer("ghost", "x")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrNotFound, domainErr.Code)

	snap := e.Snapshot()
	assert.Equal(t, map[string]string{"q1": "Mars", "q3": "paris"}, snap.Answers)
}

func TestEngine_Navigation(t *testing.T) {
	e := newTestEngine(t, nil, nil, Options{})
	require.NoError(t, e.Start())

	assert.Error(t, e.Previous(), "cannot step before the first question")

	require.NoError(t, e.Next())
	snap := e.Snapshot()
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.Equal(t, 15, snap.RemainingSeconds, "true/false budget")

	require.NoError(t, e.Next())
	snap = e.Snapshot()
	assert.Equal(t, 2, snap.CurrentIndex)
	assert.Equal(t, 30, snap.RemainingSeconds, "fill blank budget")
	assert.Error(t, e.Next(), "cannot advance past the last question")

	// Going back re-arms the full budget; remaining time is not restored.
	require.NoError(t, e.Previous())
	snap = e.Snapshot()
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.Equal(t, 15, snap.RemainingSeconds)
}

func TestEngine_TickCountdown(t *testing.T) {
	e := newTestEngine(t, nil, nil, Options{})
	require.NoError(t, e.Start())

	gen := e.timerGen
	assert.False(t, e.tick(gen))
	assert.Equal(t, 19, e.Snapshot().RemainingSeconds)

	t.Run("stale generation is a no-op", func(t *testing.T) {
		require.NoError(t, e.Next()) // bumps the generation
		before := e.Snapshot().RemainingSeconds
		assert.True(t, e.tick(gen), "stale tick reports done")
		assert.Equal(t, before, e.Snapshot().RemainingSeconds)
	})
}

func TestEngine_ExactlyOneCountdown(t *testing.T) {
	e := newTestEngine(t, nil, nil, Options{})
	require.NoError(t, e.Start())

	// Every navigation replaces the countdown: the generation moves strictly
	// forward and old generations are dead.
	g1 := e.timerGen
	require.NoError(t, e.Next())
	g2 := e.timerGen
	require.NoError(t, e.Previous())
	g3 := e.timerGen

	assert.Greater(t, g2, g1)
	assert.Greater(t, g3, g2)
	assert.True(t, e.tick(g1))
	assert.True(t, e.tick(g2))
	assert.False(t, e.tick(g3), "only the newest generation is live")
}

func TestEngine_TimeoutAdvances(t *testing.T) {
	e := newTestEngine(t, nil, nil, Options{})
	require.NoError(t, e.Start())
	require.NoError(t, e.Answer("q1", "Mars"))

	// Drain the first question's budget.
	gen := e.timerGen
	for i := 0; i < 20; i++ {
		done := e.tick(gen)
		if done {
			break
		}
	}

	snap := e.Snapshot()
	assert.Equal(t, StateInProgress, snap.State)
	assert.Equal(t, 1, snap.CurrentIndex, "timeout behaves like pressing next")
	assert.Equal(t, 15, snap.RemainingSeconds, "fresh budget for the new question")
	assert.Equal(t, "Mars", snap.Answers["q1"], "recorded answer survives the timeout")
}

func TestEngine_TimeoutOnLastQuestionAutoSubmits(t *testing.T) {
	sink := &stubSink{}
	submitted := make(chan *domain.Attempt, 1)
	e := newTestEngine(t, nil, sink, Options{
		OnSubmitted: func(a *domain.Attempt) { submitted <- a },
	})
	require.NoError(t, e.Start())
	require.NoError(t, e.Answer("q1", "Mars"))
	require.NoError(t, e.Answer("q2", "True"))
	require.NoError(t, e.Next())
	require.NoError(t, e.Next())

	// Expire the last question's budget; the engine submits on its own.
	gen := e.timerGen
	for !e.tick(gen) {
	}

	select {
	case attempt := <-submitted:
		assert.Equal(t, "user1", attempt.UserID)
		assert.Equal(t, 2, attempt.Score)
		assert.Equal(t, 3, attempt.TotalQuestions)
	case <-time.After(2 * time.Second):
		t.Fatal("auto-submit never completed")
	}

	snap := e.Snapshot()
	assert.Equal(t, StateSubmitted, snap.State)
	assert.True(t, snap.AutoSubmit)
	assert.Equal(t, "attempt-1", snap.AttemptID)
}

func TestEngine_ManualSubmit(t *testing.T) {
	sink := &stubSink{}
	var notified *domain.Attempt
	e := newTestEngine(t, nil, sink, Options{
		OnSubmitted: func(a *domain.Attempt) { notified = a },
	})
	require.NoError(t, e.Start())
	require.NoError(t, e.Answer("q1", "Mars"))
	require.NoError(t, e.Answer("q2", "false")) // wrong
	require.NoError(t, e.Answer("q3", " PARIS "))

	attempt, err := e.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "attempt-1", attempt.ID)
	assert.Equal(t, "user1", attempt.UserID)
	assert.Equal(t, "quiz1", attempt.QuizID)
	assert.Equal(t, 2, attempt.Score)
	assert.Equal(t, 3, attempt.TotalQuestions)
	assert.False(t, attempt.CorrectAnswers["q2"].IsCorrect)
	require.NotNil(t, notified)
	assert.Same(t, attempt, notified)

	snap := e.Snapshot()
	assert.Equal(t, StateSubmitted, snap.State)
	assert.False(t, snap.AutoSubmit)

	_, err = e.Submit(context.Background())
	assert.Error(t, err, "a submitted session cannot be submitted again")
}

func TestEngine_SubmitFailureRecovers(t *testing.T) {
	boom := errors.New("database unavailable")
	failing := true
	sink := &stubSink{
		saveFn: func(ctx context.Context, attempt *domain.Attempt) (string, error) {
			if failing {
				return "", boom
			}
			return "attempt-2", nil
		},
	}
	e := newTestEngine(t, nil, sink, Options{})
	require.NoError(t, e.Start())
	require.NoError(t, e.Answer("q1", "Mars"))
	require.NoError(t, e.Next())
	require.NoError(t, e.Answer("q2", "True"))

	_, err := e.Submit(context.Background())
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrSubmissionFailure, domainErr.Code)

	// The session is back in progress at the same question with a fresh
	// countdown and the answers intact.
	snap := e.Snapshot()
	assert.Equal(t, StateInProgress, snap.State)
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.Equal(t, 15, snap.RemainingSeconds)
	assert.Equal(t, map[string]string{"q1": "Mars", "q2": "True"}, snap.Answers)
	assert.Contains(t, snap.LastSubmissionError, "Failed to persist")

	// Retrying after the fault clears succeeds and resets the error.
	failing = false
	attempt, err := e.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "attempt-2", attempt.ID)
	assert.Equal(t, 2, attempt.Score)
	assert.Empty(t, e.Snapshot().LastSubmissionError)
}

func TestEngine_IdentityFailureRecovers(t *testing.T) {
	e := newTestEngine(t, nil, &stubSink{}, Options{
		Identity: stubIdentity{err: errors.New("token expired")},
	})
	require.NoError(t, e.Start())

	_, err := e.Submit(context.Background())
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrSubmissionFailure, domainErr.Code)
	assert.Equal(t, StateInProgress, e.Snapshot().State)
}

func TestEngine_SubmitWhileSubmitting(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	sink := &stubSink{
		saveFn: func(ctx context.Context, attempt *domain.Attempt) (string, error) {
			close(entered)
			<-release
			return "attempt-1", nil
		},
	}
	e := newTestEngine(t, nil, sink, Options{})
	require.NoError(t, e.Start())

	done := make(chan error, 1)
	go func() {
		_, err := e.Submit(context.Background())
		done <- err
	}()
	<-entered

	_, err := e.Submit(context.Background())
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrSessionState, domainErr.Code)
	assert.Contains(t, domainErr.Message, "already in flight")

	close(release)
	require.NoError(t, <-done)
}

func TestEngine_CloseCancelsCountdown(t *testing.T) {
	// Real ticker here: Close must tear the goroutine's context down.
	quiz := &domain.Quiz{ID: "quiz1", Title: "Geography"}
	e, err := NewEngine("sess1", quiz, testQuestions(), Options{
		Sink:     &stubSink{},
		Identity: stubIdentity{userID: "user1"},
	})
	require.NoError(t, err)
	require.NoError(t, e.Start())

	e.mu.Lock()
	armed := e.timerCancel != nil
	e.mu.Unlock()
	require.True(t, armed)

	e.Close()

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Nil(t, e.timerCancel)
}
