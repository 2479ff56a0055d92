package middleware

import (
	"strings"

	"quizroom/internal/domain"
	"quizroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	// UserIDKey is the fiber locals key for the authenticated user's id.
	UserIDKey = "userID"
	// UserRoleKey is the fiber locals key for the authenticated user's role.
	UserRoleKey = "userRole"
)

// Protected requires a valid bearer access token and stores the caller's
// identity in locals.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return domain.NewUnauthorizedError("missing authorization header")
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return domain.NewUnauthorizedError("authorization header must be a bearer token")
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			return err
		}
		if claims.TokenType != "access" {
			return domain.NewUnauthorizedError("not an access token")
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(UserRoleKey, claims.Role)
		return c.Next()
	}
}

// RequireTeacher gates authoring routes. Must run after Protected.
func RequireTeacher() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(UserRoleKey).(string)
		if role != service.RoleTeacher {
			return domain.NewForbiddenError("teacher role required")
		}
		return c.Next()
	}
}

// UserID extracts the authenticated user's id from locals.
func UserID(c *fiber.Ctx) (string, error) {
	id, _ := c.Locals(UserIDKey).(string)
	if id == "" {
		return "", domain.NewUnauthorizedError("no authenticated user")
	}
	return id, nil
}
