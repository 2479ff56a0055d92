package handler

import (
	"quizroom/internal/middleware"
	"quizroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ResultHandler exposes scored attempts and leaderboards.
type ResultHandler struct {
	resultService service.ResultService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// GetMyAttempts godoc
// @Summary List the caller's attempts
// @Tags results
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.AttemptListResponse
// @Security BearerAuth
// @Router /attempts [get]
func (h *ResultHandler) GetMyAttempts(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	resp, err := h.resultService.GetMyAttempts(c.Context(), userID, c.QueryInt("limit", 10), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetAttempt godoc
// @Summary Get one attempt
// @Description Visible to the attempt's owner and to the owner of its quiz
// @Tags results
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /attempts/{id} [get]
func (h *ResultHandler) GetAttempt(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	resp, err := h.resultService.GetAttempt(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuizResults godoc
// @Summary List every attempt on a quiz
// @Description Quiz owner only
// @Tags results
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {array} dto.AttemptResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id}/results [get]
func (h *ResultHandler) GetQuizResults(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	resp, err := h.resultService.GetQuizResults(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetLatestAttempt godoc
// @Summary Get the caller's latest attempt on a quiz
// @Tags results
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id}/attempts/latest [get]
func (h *ResultHandler) GetLatestAttempt(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	resp, err := h.resultService.GetLatestAttempt(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetBestAttempt godoc
// @Summary Get the caller's best attempt on a quiz
// @Tags results
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id}/attempts/best [get]
func (h *ResultHandler) GetBestAttempt(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	resp, err := h.resultService.GetBestAttempt(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetLeaderboard godoc
// @Summary Get the leaderboard for a quiz
// @Description Best attempt per user, ties broken by the shorter time taken
// @Tags results
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.LeaderboardResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id}/leaderboard [get]
func (h *ResultHandler) GetLeaderboard(c *fiber.Ctx) error {
	resp, err := h.resultService.GetLeaderboard(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
