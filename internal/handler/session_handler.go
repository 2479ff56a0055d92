package handler

import (
	"quizroom/internal/domain"
	"quizroom/internal/dto"
	"quizroom/internal/middleware"
	"quizroom/internal/service"
	"quizroom/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler exposes the live quiz-taking flow.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// StartSession godoc
// @Summary Start a quiz session
// @Description Loads the quiz, checks its availability window, and starts the countdown on question one
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.StartSessionRequest true "Quiz to start"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Quiz not yet open or already closed"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if err := validation.ValidateStartSessionRequest(&req); err != nil {
		return err
	}

	resp, err := h.sessionService.StartSession(c.Context(), userID, req.QuizID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSession godoc
// @Summary Get session state
// @Description Returns the current question, remaining time, and recorded answers
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	resp, err := h.sessionService.GetSession(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RecordAnswer godoc
// @Summary Record an answer
// @Description Saves or overwrites the answer for one question without touching the countdown
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SessionAnswerRequest true "Answer"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} dto.ErrorResponse "Session is not in progress"
// @Security BearerAuth
// @Router /sessions/{id}/answers [post]
func (h *SessionHandler) RecordAnswer(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.SessionAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if err := validation.ValidateSessionAnswerRequest(&req); err != nil {
		return err
	}

	resp, err := h.sessionService.RecordAnswer(c.Context(), userID, c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// NextQuestion godoc
// @Summary Advance to the next question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} dto.ErrorResponse "Already at the last question"
// @Security BearerAuth
// @Router /sessions/{id}/next [post]
func (h *SessionHandler) NextQuestion(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	resp, err := h.sessionService.NextQuestion(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PreviousQuestion godoc
// @Summary Step back to the previous question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} dto.ErrorResponse "Already at the first question"
// @Security BearerAuth
// @Router /sessions/{id}/previous [post]
func (h *SessionHandler) PreviousQuestion(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	resp, err := h.sessionService.PreviousQuestion(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitSession godoc
// @Summary Submit the quiz
// @Description Scores the recorded answers and persists the attempt. On persistence failure the session stays alive for a retry.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 409 {object} dto.ErrorResponse "Submission already in flight"
// @Failure 502 {object} dto.ErrorResponse "Attempt could not be persisted"
// @Security BearerAuth
// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) SubmitSession(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	resp, err := h.sessionService.SubmitSession(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AbandonSession godoc
// @Summary Abandon a session
// @Description Drops the session and its countdown; nothing is persisted
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sessions/{id} [delete]
func (h *SessionHandler) AbandonSession(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	if err := h.sessionService.AbandonSession(c.Context(), userID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
