package validation

import (
	"strings"

	"quizroom/internal/domain"
	"quizroom/internal/dto"
)

// Request-level checks run before any repository or engine work; deeper
// per-kind invariants live on the domain types themselves.

func ValidateStartSessionRequest(req *dto.StartSessionRequest) error {
	if strings.TrimSpace(req.QuizID) == "" {
		return domain.NewInvalidInputError("quiz_id is required")
	}
	return nil
}

func ValidateSessionAnswerRequest(req *dto.SessionAnswerRequest) error {
	if strings.TrimSpace(req.QuestionID) == "" {
		return domain.NewInvalidInputError("question_id is required")
	}
	return nil
}

func ValidateCreateQuizRequest(req *dto.CreateQuizRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return domain.NewInvalidInputError("title is required")
	}
	if req.OpenTime != nil && req.CloseTime != nil && !req.OpenTime.Before(*req.CloseTime) {
		return domain.NewInvalidInputError("open_time must be before close_time")
	}
	return nil
}

func ValidateUpdateQuizRequest(req *dto.UpdateQuizRequest) error {
	return ValidateCreateQuizRequest(&dto.CreateQuizRequest{
		Title:     req.Title,
		Subject:   req.Subject,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
	})
}

func ValidateQuestionRequest(req *dto.QuestionRequest) error {
	if !domain.ValidKind(domain.QuestionKind(req.QuestionType)) {
		return domain.NewInvalidInputError("unsupported question type: " + req.QuestionType)
	}
	if strings.TrimSpace(req.QuestionText) == "" {
		return domain.NewInvalidInputError("question_text is required")
	}
	if req.Position < 0 {
		return domain.NewInvalidInputError("position must not be negative")
	}
	return nil
}

func ValidateRefreshTokenRequest(req *dto.RefreshTokenRequest) error {
	if strings.TrimSpace(req.RefreshToken) == "" {
		return domain.NewInvalidInputError("refresh_token is required")
	}
	return nil
}
