package service

import (
	"context"
	"database/sql"
	"errors"

	"quizroom/internal/domain"
	"quizroom/internal/dto"
	"quizroom/internal/util"
)

// QuizService covers quiz browsing and teacher-side authoring.
type QuizService interface {
	GetQuiz(ctx context.Context, quizID string) (*dto.QuizResponse, error)
	GetQuizDetail(ctx context.Context, requesterID, quizID string) (*dto.QuizDetailResponse, error)
	ListQuizzes(ctx context.Context, limit, offset int) (*dto.QuizListResponse, error)
	ListMyQuizzes(ctx context.Context, ownerID string) ([]dto.QuizResponse, error)
	CreateQuiz(ctx context.Context, ownerID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	UpdateQuiz(ctx context.Context, ownerID, quizID string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error)
	DeleteQuiz(ctx context.Context, ownerID, quizID string) error
	AddQuestion(ctx context.Context, ownerID, quizID string, req *dto.QuestionRequest) (*dto.QuestionResponse, error)
	RemoveQuestion(ctx context.Context, ownerID, quizID, questionID string) error
}

type quizService struct {
	quizRepo domain.QuizRepository
}

// NewQuizService creates a new QuizService.
func NewQuizService(quizRepo domain.QuizRepository) QuizService {
	return &quizService{quizRepo: quizRepo}
}

// GetQuiz returns the public view of one quiz, without questions.
func (s *quizService) GetQuiz(ctx context.Context, quizID string) (*dto.QuizResponse, error) {
	quiz, err := s.ownedQuiz(ctx, quizID, "")
	if err != nil {
		return nil, err
	}
	resp := toQuizResponse(quiz)
	return &resp, nil
}

// GetQuizDetail returns a quiz with its questions, correctness included.
// Owner only: this is the authoring view.
func (s *quizService) GetQuizDetail(ctx context.Context, requesterID, quizID string) (*dto.QuizDetailResponse, error) {
	quiz, err := s.ownedQuiz(ctx, quizID, requesterID)
	if err != nil {
		return nil, err
	}

	questions, err := s.quizRepo.GetQuestionsByQuizID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load questions", err)
	}

	detail := &dto.QuizDetailResponse{
		Quiz:      toQuizResponse(quiz),
		Questions: make([]dto.QuestionResponse, 0, len(questions)),
	}
	for i := range questions {
		detail.Questions = append(detail.Questions, toQuestionResponse(&questions[i]))
	}
	return detail, nil
}

// ListQuizzes returns a page of all quizzes.
func (s *quizService) ListQuizzes(ctx context.Context, limit, offset int) (*dto.QuizListResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	quizzes, total, err := s.quizRepo.ListQuizzes(ctx, limit, offset)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}

	resp := &dto.QuizListResponse{
		Quizzes: make([]dto.QuizResponse, 0, len(quizzes)),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	for i := range quizzes {
		resp.Quizzes = append(resp.Quizzes, toQuizResponse(&quizzes[i]))
	}
	return resp, nil
}

// ListMyQuizzes returns every quiz the caller owns.
func (s *quizService) ListMyQuizzes(ctx context.Context, ownerID string) ([]dto.QuizResponse, error) {
	quizzes, err := s.quizRepo.ListQuizzesByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}

	resp := make([]dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		resp = append(resp, toQuizResponse(&quizzes[i]))
	}
	return resp, nil
}

// CreateQuiz creates a new quiz owned by the caller.
func (s *quizService) CreateQuiz(ctx context.Context, ownerID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	quiz := domain.NewQuiz(ownerID, req.Title, req.Subject)
	quiz.ID = util.NewULID()
	quiz.OpenTime = req.OpenTime
	quiz.CloseTime = req.CloseTime

	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	if err := s.quizRepo.SaveQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("failed to save quiz", err)
	}

	resp := toQuizResponse(quiz)
	return &resp, nil
}

// UpdateQuiz edits a quiz's metadata and window. Owner only.
func (s *quizService) UpdateQuiz(ctx context.Context, ownerID, quizID string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
	quiz, err := s.ownedQuiz(ctx, quizID, ownerID)
	if err != nil {
		return nil, err
	}

	quiz.Title = req.Title
	quiz.Subject = req.Subject
	quiz.OpenTime = req.OpenTime
	quiz.CloseTime = req.CloseTime

	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	if err := s.quizRepo.UpdateQuiz(ctx, quiz); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewQuizNotFoundError(quizID)
		}
		return nil, domain.NewInternalError("failed to update quiz", err)
	}

	resp := toQuizResponse(quiz)
	return &resp, nil
}

// DeleteQuiz soft-deletes a quiz. Owner only.
func (s *quizService) DeleteQuiz(ctx context.Context, ownerID, quizID string) error {
	if _, err := s.ownedQuiz(ctx, quizID, ownerID); err != nil {
		return err
	}
	if err := s.quizRepo.DeleteQuiz(ctx, quizID); err != nil {
		return domain.NewInternalError("failed to delete quiz", err)
	}
	return nil
}

// AddQuestion appends a question to a quiz. Owner only.
func (s *quizService) AddQuestion(ctx context.Context, ownerID, quizID string, req *dto.QuestionRequest) (*dto.QuestionResponse, error) {
	if _, err := s.ownedQuiz(ctx, quizID, ownerID); err != nil {
		return nil, err
	}

	question := domain.NewQuestion(quizID, domain.QuestionKind(req.QuestionType), req.QuestionText, req.Position)
	question.ID = util.NewULID()
	question.OptionA = req.OptionA
	question.OptionB = req.OptionB
	question.OptionC = req.OptionC
	question.OptionD = req.OptionD
	question.Correct = domain.CorrectAnswer{
		Letter: req.CorrectAnswer,
		Text:   req.CorrectTextAnswer,
	}

	if err := question.Validate(); err != nil {
		return nil, err
	}
	if err := s.quizRepo.SaveQuestion(ctx, question); err != nil {
		return nil, domain.NewInternalError("failed to save question", err)
	}

	resp := toQuestionResponse(question)
	return &resp, nil
}

// RemoveQuestion soft-deletes a question from a quiz. Owner only.
func (s *quizService) RemoveQuestion(ctx context.Context, ownerID, quizID, questionID string) error {
	if _, err := s.ownedQuiz(ctx, quizID, ownerID); err != nil {
		return err
	}
	if err := s.quizRepo.DeleteQuestion(ctx, questionID); err != nil {
		return domain.NewInternalError("failed to delete question", err)
	}
	return nil
}

// ownedQuiz fetches a quiz and, when requesterID is non-empty, enforces
// ownership.
func (s *quizService) ownedQuiz(ctx context.Context, quizID, requesterID string) (*domain.Quiz, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	if requesterID != "" && quiz.OwnerID != requesterID {
		return nil, domain.NewForbiddenError("quiz belongs to another user")
	}
	return quiz, nil
}

func toQuizResponse(quiz *domain.Quiz) dto.QuizResponse {
	return dto.QuizResponse{
		ID:        quiz.ID,
		OwnerID:   quiz.OwnerID,
		Title:     quiz.Title,
		Subject:   quiz.Subject,
		OpenTime:  quiz.OpenTime,
		CloseTime: quiz.CloseTime,
		CreatedAt: quiz.CreatedAt,
	}
}

func toQuestionResponse(q *domain.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:                q.ID,
		QuizID:            q.QuizID,
		QuestionType:      string(q.Kind),
		QuestionText:      q.Text,
		OptionA:           q.OptionA,
		OptionB:           q.OptionB,
		OptionC:           q.OptionC,
		OptionD:           q.OptionD,
		CorrectAnswer:     q.Correct.Letter,
		CorrectTextAnswer: q.Correct.Text,
		Position:          q.Position,
	}
}
