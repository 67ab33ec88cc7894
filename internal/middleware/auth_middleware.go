package middleware

import (
	"strings"

	"quiz-extensions/internal/logger"
	"quiz-extensions/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID"   // Key for storing UserID in fiber.Ctx locals
	CourseIDKey         = "courseID" // Key for storing the launch course in fiber.Ctx locals
)

// Protected requires a valid launch token. The course and user it carries are
// stored in the context for the handlers.
func Protected(verifier service.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := verifier.Verify(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("Launch token rejected", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(CourseIDKey, claims.CourseID)
		c.Locals(UserIDKey, claims.UserID)

		return c.Next()
	}
}

// CourseID returns the course bound by Protected.
func CourseID(c *fiber.Ctx) string {
	v, _ := c.Locals(CourseIDKey).(string)
	return v
}

// UserID returns the user bound by Protected.
func UserID(c *fiber.Ctx) string {
	v, _ := c.Locals(UserIDKey).(string)
	return v
}
