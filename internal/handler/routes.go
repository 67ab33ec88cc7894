package handler

import (
	"quiz-extensions/internal/middleware"
	"quiz-extensions/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API under api. Everything but the health check
// requires a launch token.
func RegisterRoutes(api fiber.Router, verifier service.TokenVerifier, sessions *SessionHandler, health *HealthHandler) {
	vm := middleware.NewValidationMiddleware()

	api.Get("/health", health.Health)

	protected := api.Group("", middleware.Protected(verifier))
	protected.Get("/advisory", sessions.GetAdvisory)
	protected.Post("/sessions", sessions.CreateSession)

	sessionGroup := protected.Group("/sessions/:id", vm.ValidateSessionID())
	sessionGroup.Get("", sessions.GetSession)
	sessionGroup.Delete("", sessions.DeleteSession)
	sessionGroup.Get("/students", vm.ValidateStudentQuery(), sessions.ListStudents)
	sessionGroup.Post("/choose", sessions.ChooseStudent)
	sessionGroup.Post("/recall", sessions.RecallStudent)
	sessionGroup.Post("/clear", sessions.ClearSelection)
	sessionGroup.Put("/percent", sessions.SetPercent)
	sessionGroup.Post("/submit", sessions.Submit)
	sessionGroup.Post("/refresh", sessions.Refresh)
	sessionGroup.Post("/dismiss", sessions.Dismiss)
	sessionGroup.Get("/report", sessions.GetReport)
}
