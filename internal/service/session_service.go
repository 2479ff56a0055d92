package service

import (
	"context"
	"sync"

	"quizroom/internal/cache"
	"quizroom/internal/domain"
	"quizroom/internal/dto"
	"quizroom/internal/logger"
	"quizroom/internal/notify"
	"quizroom/internal/session"
	"quizroom/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SessionService drives live quiz attempts: it loads quiz content, creates
// engines, and routes the caller's actions to the right engine.
type SessionService interface {
	StartSession(ctx context.Context, userID, quizID string) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error)
	RecordAnswer(ctx context.Context, userID, sessionID string, req *dto.SessionAnswerRequest) (*dto.SessionResponse, error)
	NextQuestion(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error)
	PreviousQuestion(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error)
	SubmitSession(ctx context.Context, userID, sessionID string) (*dto.AttemptResponse, error)
	AbandonSession(ctx context.Context, userID, sessionID string) error
}

type sessionService struct {
	quizRepo    domain.QuizRepository
	attemptRepo domain.AttemptRepository
	registry    *session.Registry
	countdowns  session.Countdowns
	hub         *notify.Hub
	cacheStore  domain.Cache

	mu     sync.Mutex
	owners map[string]string // session id -> user id
}

// NewSessionService creates a new SessionService.
func NewSessionService(
	quizRepo domain.QuizRepository,
	attemptRepo domain.AttemptRepository,
	registry *session.Registry,
	countdowns session.Countdowns,
	hub *notify.Hub,
	cacheStore domain.Cache,
) SessionService {
	return &sessionService{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		registry:    registry,
		countdowns:  countdowns,
		hub:         hub,
		cacheStore:  cacheStore,
		owners:      make(map[string]string),
	}
}

// fixedIdentity pins the engine's acting user to the session creator.
type fixedIdentity struct {
	userID string
}

func (f fixedIdentity) CurrentUserID(ctx context.Context) (string, error) {
	if f.userID == "" {
		return "", domain.NewUnauthorizedError("no authenticated user for this session")
	}
	return f.userID, nil
}

// attemptSink adapts the attempt repository to the engine's persistence port.
type attemptSink struct {
	repo domain.AttemptRepository
}

func (s attemptSink) SaveAttempt(ctx context.Context, attempt *domain.Attempt) (string, error) {
	return s.repo.CreateAttempt(ctx, attempt)
}

// StartSession loads the quiz and its questions, checks the availability
// window, and starts a fresh engine on question one. Quiz and questions load
// concurrently; either failing (or an empty question set) aborts the session
// before anything is armed.
func (s *sessionService) StartSession(ctx context.Context, userID, quizID string) (*dto.SessionResponse, error) {
	var (
		quiz      *domain.Quiz
		questions []domain.Question
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := s.quizRepo.GetQuizByID(gctx, quizID)
		if err != nil {
			return domain.NewLoadFailureError(quizID, err)
		}
		if loaded == nil {
			return domain.NewQuizNotFoundError(quizID)
		}
		quiz = loaded
		return nil
	})
	g.Go(func() error {
		loaded, err := s.quizRepo.GetQuestionsByQuizID(gctx, quizID)
		if err != nil {
			return domain.NewLoadFailureError(quizID, err)
		}
		questions = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sessionID := util.NewULID()
	engine, err := session.NewEngine(sessionID, quiz, questions, session.Options{
		Countdowns:  s.countdowns,
		Sink:        attemptSink{repo: s.attemptRepo},
		Identity:    fixedIdentity{userID: userID},
		OnSubmitted: s.afterSubmit,
	})
	if err != nil {
		return nil, err
	}

	if err := engine.Start(); err != nil {
		return nil, err
	}

	s.registry.Put(engine)
	s.mu.Lock()
	s.owners[sessionID] = userID
	s.mu.Unlock()

	logger.Get().Info("Quiz session started",
		zap.String("sessionID", sessionID),
		zap.String("quizID", quizID),
		zap.String("userID", userID))

	return toSessionResponse(engine.Snapshot()), nil
}

// GetSession returns the current session state; clients poll this to track
// the countdown and to discover timeout-driven transitions.
func (s *sessionService) GetSession(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error) {
	engine, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(engine.Snapshot()), nil
}

// RecordAnswer saves or overwrites the answer for one question.
func (s *sessionService) RecordAnswer(ctx context.Context, userID, sessionID string, req *dto.SessionAnswerRequest) (*dto.SessionResponse, error) {
	engine, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := engine.Answer(req.QuestionID, req.Answer); err != nil {
		return nil, err
	}
	return toSessionResponse(engine.Snapshot()), nil
}

// NextQuestion advances the session one question forward.
func (s *sessionService) NextQuestion(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error) {
	engine, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := engine.Next(); err != nil {
		return nil, err
	}
	return toSessionResponse(engine.Snapshot()), nil
}

// PreviousQuestion steps the session one question back.
func (s *sessionService) PreviousQuestion(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error) {
	engine, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := engine.Previous(); err != nil {
		return nil, err
	}
	return toSessionResponse(engine.Snapshot()), nil
}

// SubmitSession finalizes the attempt. On success the session is torn down
// and the scored attempt returned; on persistence failure the session stays
// alive in InProgress so the caller can retry.
func (s *sessionService) SubmitSession(ctx context.Context, userID, sessionID string) (*dto.AttemptResponse, error) {
	engine, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}

	attempt, err := engine.Submit(ctx)
	if err != nil {
		return nil, err
	}

	s.remove(sessionID)
	resp := toAttemptResponse(attempt)
	return &resp, nil
}

// AbandonSession drops the session without persisting anything.
func (s *sessionService) AbandonSession(ctx context.Context, userID, sessionID string) error {
	if _, err := s.lookup(userID, sessionID); err != nil {
		return err
	}
	s.remove(sessionID)
	return nil
}

func (s *sessionService) lookup(userID, sessionID string) (*session.Engine, error) {
	engine, ok := s.registry.Get(sessionID)
	if !ok {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	s.mu.Lock()
	owner := s.owners[sessionID]
	s.mu.Unlock()
	if owner != userID {
		return nil, domain.NewForbiddenError("session belongs to another user")
	}
	return engine, nil
}

func (s *sessionService) remove(sessionID string) {
	s.registry.Remove(sessionID)
	s.mu.Lock()
	delete(s.owners, sessionID)
	s.mu.Unlock()
}

// afterSubmit runs once per persisted attempt, for both manual and
// timeout-driven submissions.
func (s *sessionService) afterSubmit(attempt *domain.Attempt) {
	s.hub.Publish(notify.AttemptEvent{
		QuizID:         attempt.QuizID,
		UserID:         attempt.UserID,
		AttemptID:      attempt.ID,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		CompletedAt:    attempt.CompletedAt,
	})

	key := leaderboardCacheKey(attempt.QuizID)
	if err := s.cacheStore.Delete(context.Background(), key); err != nil {
		logger.Get().Warn("Failed to invalidate leaderboard cache",
			zap.String("quizID", attempt.QuizID),
			zap.Error(err))
	}
}

func leaderboardCacheKey(quizID string) string {
	return cache.GenerateCacheKey("results", "leaderboard", quizID)
}

func toSessionResponse(snap session.Snapshot) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		SessionID:           snap.ID,
		State:               string(snap.State),
		QuizID:              snap.QuizID,
		QuizTitle:           snap.QuizTitle,
		CurrentIndex:        snap.CurrentIndex,
		TotalQuestions:      snap.TotalQuestions,
		RemainingSeconds:    snap.RemainingSeconds,
		Answers:             snap.Answers,
		AutoSubmit:          snap.AutoSubmit,
		AttemptID:           snap.AttemptID,
		AvailabilityMessage: snap.Availability.Message,
		LastSubmissionError: snap.LastSubmissionError,
	}
	if snap.CountdownSeconds > 0 {
		resp.RemainingPercent = float64(snap.RemainingSeconds) / float64(snap.CountdownSeconds) * 100
	}
	if snap.CurrentQuestion != nil {
		resp.Question = &dto.SessionQuestion{
			ID:           snap.CurrentQuestion.ID,
			QuestionType: string(snap.CurrentQuestion.Kind),
			QuestionText: snap.CurrentQuestion.Text,
			OptionA:      snap.CurrentQuestion.OptionA,
			OptionB:      snap.CurrentQuestion.OptionB,
			OptionC:      snap.CurrentQuestion.OptionC,
			OptionD:      snap.CurrentQuestion.OptionD,
		}
	}
	return resp
}
