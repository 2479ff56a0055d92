package handler

import (
	"quizroom/internal/domain"
	"quizroom/internal/dto"
	"quizroom/internal/service"
	"quizroom/internal/util"
	"quizroom/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const oauthStateCookie = "oauth_state"

// AuthHandler exposes Google OAuth sign-in and token refresh.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// GoogleLogin godoc
// @Summary Redirect to Google's consent screen
// @Tags auth
// @Success 307
// @Router /auth/google [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state := util.NewULID()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(h.authService.GetGoogleLoginURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback godoc
// @Summary Complete the Google OAuth flow
// @Description Exchanges the authorization code and returns a token pair
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "OAuth state"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	state := c.Query("state")
	if state == "" || state != c.Cookies(oauthStateCookie) {
		return domain.NewUnauthorizedError("oauth state mismatch")
	}
	c.ClearCookie(oauthStateCookie)

	code := c.Query("code")
	if code == "" {
		return domain.NewInvalidInputError("code is required")
	}

	tokens, err := h.authService.HandleGoogleCallback(c.Context(), code)
	if err != nil {
		return err
	}
	return c.JSON(tokens)
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a fresh pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if err := validation.ValidateRefreshTokenRequest(&req); err != nil {
		return err
	}

	tokens, err := h.authService.RefreshTokens(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(tokens)
}
