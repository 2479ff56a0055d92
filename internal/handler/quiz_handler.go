package handler

import (
	"quizroom/internal/domain"
	"quizroom/internal/dto"
	"quizroom/internal/middleware"
	"quizroom/internal/service"
	"quizroom/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler exposes quiz browsing and teacher-side authoring.
type QuizHandler struct {
	quizService service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// ListQuizzes godoc
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.QuizListResponse
// @Security BearerAuth
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	resp, err := h.quizService.ListQuizzes(c.Context(), c.QueryInt("limit", 10), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListMyQuizzes godoc
// @Summary List the caller's quizzes
// @Tags quizzes
// @Produce json
// @Success 200 {array} dto.QuizResponse
// @Security BearerAuth
// @Router /quizzes/mine [get]
func (h *QuizHandler) ListMyQuizzes(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	resp, err := h.quizService.ListMyQuizzes(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Public quiz metadata, without questions
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	resp, err := h.quizService.GetQuiz(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuizDetail godoc
// @Summary Get a quiz with its questions
// @Description Authoring view including correct answers; quiz owner only
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id}/detail [get]
func (h *QuizHandler) GetQuizDetail(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	resp, err := h.quizService.GetQuizDetail(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if err := validation.ValidateCreateQuizRequest(&req); err != nil {
		return err
	}

	resp, err := h.quizService.CreateQuiz(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateQuiz godoc
// @Summary Update a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.UpdateQuizRequest true "Quiz"
// @Success 200 {object} dto.QuizResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if err := validation.ValidateUpdateQuizRequest(&req); err != nil {
		return err
	}

	resp, err := h.quizService.UpdateQuiz(c.Context(), userID, c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Tags quizzes
// @Param id path string true "Quiz ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	if err := h.quizService.DeleteQuiz(c.Context(), userID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddQuestion godoc
// @Summary Add a question to a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.QuestionRequest true "Question"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id}/questions [post]
func (h *QuizHandler) AddQuestion(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if err := validation.ValidateQuestionRequest(&req); err != nil {
		return err
	}

	resp, err := h.quizService.AddQuestion(c.Context(), userID, c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RemoveQuestion godoc
// @Summary Remove a question from a quiz
// @Tags quizzes
// @Param id path string true "Quiz ID"
// @Param questionId path string true "Question ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id}/questions/{questionId} [delete]
func (h *QuizHandler) RemoveQuestion(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	if err := h.quizService.RemoveQuestion(c.Context(), userID, c.Params("id"), c.Params("questionId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
