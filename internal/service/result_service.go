package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quizroom/internal/domain"
	"quizroom/internal/dto"
	"quizroom/internal/logger"

	"go.uber.org/zap"
)

// ResultService serves scored attempts and the per-quiz leaderboard.
type ResultService interface {
	GetMyAttempts(ctx context.Context, userID string, limit, offset int) (*dto.AttemptListResponse, error)
	GetAttempt(ctx context.Context, userID, attemptID string) (*dto.AttemptResponse, error)
	GetQuizResults(ctx context.Context, requesterID, quizID string) ([]dto.AttemptResponse, error)
	GetLatestAttempt(ctx context.Context, userID, quizID string) (*dto.AttemptResponse, error)
	GetBestAttempt(ctx context.Context, userID, quizID string) (*dto.AttemptResponse, error)
	GetLeaderboard(ctx context.Context, quizID string) (*dto.LeaderboardResponse, error)
}

type resultService struct {
	attemptRepo domain.AttemptRepository
	quizRepo    domain.QuizRepository
	cacheStore  domain.Cache
	cacheTTL    time.Duration
	boardLimit  int
}

// NewResultService creates a new ResultService.
func NewResultService(
	attemptRepo domain.AttemptRepository,
	quizRepo domain.QuizRepository,
	cacheStore domain.Cache,
	cacheTTL time.Duration,
	boardLimit int,
) ResultService {
	if boardLimit <= 0 {
		boardLimit = 20
	}
	return &resultService{
		attemptRepo: attemptRepo,
		quizRepo:    quizRepo,
		cacheStore:  cacheStore,
		cacheTTL:    cacheTTL,
		boardLimit:  boardLimit,
	}
}

// GetMyAttempts returns a page of the caller's own attempt history, newest
// first.
func (s *resultService) GetMyAttempts(ctx context.Context, userID string, limit, offset int) (*dto.AttemptListResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	attempts, total, err := s.attemptRepo.GetAttemptsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, domain.NewInternalError("failed to list attempts", err)
	}

	resp := &dto.AttemptListResponse{
		Attempts: make([]dto.AttemptResponse, 0, len(attempts)),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}
	for i := range attempts {
		resp.Attempts = append(resp.Attempts, toAttemptResponse(&attempts[i]))
	}
	return resp, nil
}

// GetAttempt returns one attempt. Visible to the attempt's owner and to the
// owner of the quiz it belongs to.
func (s *resultService) GetAttempt(ctx context.Context, userID, attemptID string) (*dto.AttemptResponse, error) {
	attempt, err := s.attemptRepo.GetAttemptByID(ctx, attemptID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get attempt", err)
	}
	if attempt == nil {
		return nil, domain.NewNotFoundError("attempt not found")
	}

	if attempt.UserID != userID {
		quiz, err := s.quizRepo.GetQuizByID(ctx, attempt.QuizID)
		if err != nil {
			return nil, domain.NewInternalError("failed to get quiz", err)
		}
		if quiz == nil || quiz.OwnerID != userID {
			return nil, domain.NewForbiddenError("attempt belongs to another user")
		}
	}

	resp := toAttemptResponse(attempt)
	return &resp, nil
}

// GetQuizResults returns every attempt on a quiz, for the quiz owner.
func (s *resultService) GetQuizResults(ctx context.Context, requesterID, quizID string) ([]dto.AttemptResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	if quiz.OwnerID != requesterID {
		return nil, domain.NewForbiddenError("only the quiz owner can view its results")
	}

	attempts, err := s.attemptRepo.GetAttemptsByQuiz(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quiz attempts", err)
	}

	results := make([]dto.AttemptResponse, 0, len(attempts))
	for i := range attempts {
		results = append(results, toAttemptResponse(&attempts[i]))
	}
	return results, nil
}

// GetLatestAttempt returns the caller's most recent attempt on a quiz.
func (s *resultService) GetLatestAttempt(ctx context.Context, userID, quizID string) (*dto.AttemptResponse, error) {
	attempt, err := s.attemptRepo.GetLatestAttempt(ctx, userID, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get latest attempt", err)
	}
	if attempt == nil {
		return nil, domain.NewNotFoundError("no attempts for this quiz")
	}
	resp := toAttemptResponse(attempt)
	return &resp, nil
}

// GetBestAttempt returns the caller's highest-scoring attempt on a quiz,
// ties broken by the shorter time taken.
func (s *resultService) GetBestAttempt(ctx context.Context, userID, quizID string) (*dto.AttemptResponse, error) {
	attempt, err := s.attemptRepo.GetBestAttempt(ctx, userID, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get best attempt", err)
	}
	if attempt == nil {
		return nil, domain.NewNotFoundError("no attempts for this quiz")
	}
	resp := toAttemptResponse(attempt)
	return &resp, nil
}

// GetLeaderboard returns the ranked best-attempt-per-user board for a quiz.
// The board is cached; new submissions invalidate the cache.
func (s *resultService) GetLeaderboard(ctx context.Context, quizID string) (*dto.LeaderboardResponse, error) {
	key := leaderboardCacheKey(quizID)

	cached, err := s.cacheStore.Get(ctx, key)
	if err == nil {
		var board dto.LeaderboardResponse
		if err := json.Unmarshal([]byte(cached), &board); err == nil {
			return &board, nil
		}
		logger.Get().Warn("Failed to decode cached leaderboard", zap.String("quizID", quizID))
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		logger.Get().Warn("Leaderboard cache lookup failed", zap.String("quizID", quizID), zap.Error(err))
	}

	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	entries, err := s.attemptRepo.GetLeaderboard(ctx, quizID, s.boardLimit)
	if err != nil {
		return nil, domain.NewInternalError("failed to build leaderboard", err)
	}

	board := &dto.LeaderboardResponse{
		QuizID:  quizID,
		Entries: make([]dto.LeaderboardEntryResponse, 0, len(entries)),
	}
	for i, entry := range entries {
		board.Entries = append(board.Entries, dto.LeaderboardEntryResponse{
			Rank:             i + 1,
			UserID:           entry.UserID,
			DisplayName:      entry.DisplayName,
			Score:            entry.Score,
			TotalQuestions:   entry.TotalQuestions,
			TimeTakenSeconds: entry.TimeTakenSeconds,
		})
	}

	if payload, err := json.Marshal(board); err == nil {
		if err := s.cacheStore.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
			logger.Get().Warn("Failed to cache leaderboard", zap.String("quizID", quizID), zap.Error(err))
		}
	}
	return board, nil
}

func toAttemptResponse(attempt *domain.Attempt) dto.AttemptResponse {
	checks := make(map[string]dto.AnswerCheckResponse, len(attempt.CorrectAnswers))
	for qid, check := range attempt.CorrectAnswers {
		checks[qid] = dto.AnswerCheckResponse{
			CorrectAnswerText: check.CorrectAnswerText,
			IsCorrect:         check.IsCorrect,
			NeedsReview:       check.NeedsReview,
		}
	}
	return dto.AttemptResponse{
		ID:               attempt.ID,
		UserID:           attempt.UserID,
		QuizID:           attempt.QuizID,
		Score:            attempt.Score,
		TotalQuestions:   attempt.TotalQuestions,
		TimeTakenSeconds: attempt.TimeTakenSeconds,
		Answers:          attempt.Answers,
		CorrectAnswers:   checks,
		CompletedAt:      attempt.CompletedAt,
	}
}
