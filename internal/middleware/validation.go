package middleware

import (
	"strconv"
	"strings"

	"quiz-extensions/internal/domain"
	"quiz-extensions/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	ValidatedQueryKey = "validated_query"
	ValidatedPageKey  = "validated_page"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateSessionID validates the :id path parameter.
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errors := vm.validator.ValidateSessionID(c.Params("id")); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}
		return c.Next()
	}
}

// ValidateStudentQuery validates the q and page query parameters of the
// roster endpoints. page defaults to 1.
func (vm *ValidationMiddleware) ValidateStudentQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := strings.TrimSpace(c.Query("q"))

		page := 1
		if pageStr := c.Query("page"); pageStr != "" {
			parsed, err := strconv.Atoi(pageStr)
			if err != nil {
				return domain.ValidationErrors{
					domain.NewInvalidFormatError("page", pageStr),
				}
			}
			page = parsed
		}

		if errors := vm.validator.ValidateStudentQuery(query, page); len(errors) > 0 {
			return errors
		}

		c.Locals(ValidatedQueryKey, query)
		c.Locals(ValidatedPageKey, page)
		return c.Next()
	}
}

// StudentQuery returns the values stored by ValidateStudentQuery.
func StudentQuery(c *fiber.Ctx) (string, int) {
	query, _ := c.Locals(ValidatedQueryKey).(string)
	page, ok := c.Locals(ValidatedPageKey).(int)
	if !ok {
		page = 1
	}
	return query, page
}
