package handler

import (
	"quizroom/internal/domain"
	"quizroom/internal/dto"
	"quizroom/internal/middleware"
	"quizroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler exposes the caller's own profile.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMyProfile godoc
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserProfileResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	resp, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateMyProfile godoc
// @Summary Update the caller's display name
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile"
// @Success 200 {object} dto.UserProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me [put]
func (h *UserHandler) UpdateMyProfile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.userService.UpdateProfile(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
