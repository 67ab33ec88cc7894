package handler

import (
	"quiz-extensions/internal/domain"
	"quiz-extensions/internal/dto"
	"quiz-extensions/internal/logger"
	"quiz-extensions/internal/middleware"
	"quiz-extensions/internal/service"
	"quiz-extensions/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHandler serves the operator sessions of the extension tool.
type SessionHandler struct {
	registry  *service.SessionRegistry
	roster    *service.RosterService
	advisory  *service.AdvisoryService
	reporter  *service.ResultReporter
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(registry *service.SessionRegistry, roster *service.RosterService, advisory *service.AdvisoryService) *SessionHandler {
	return &SessionHandler{
		registry:  registry,
		roster:    roster,
		advisory:  advisory,
		reporter:  service.NewResultReporter(),
		validator: validation.NewValidator(),
	}
}

func (h *SessionHandler) session(c *fiber.Ctx) (*service.Session, error) {
	return h.registry.Get(c.Params("id"), middleware.CourseID(c))
}

func sessionResponse(s *service.Session) dto.SessionResponse {
	return dto.SessionResponse{SessionID: s.ID, Session: s.Controller.Snapshot()}
}

// CreateSession godoc
// @Summary Open an operator session
// @Description Creates a session for the launch course and loads the first page of students
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.CreateSessionResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	courseID := middleware.CourseID(c)

	overview, err := service.LoadOverview(c.UserContext(), h.roster, h.advisory, courseID, "", 1)
	if err != nil {
		logger.Get().Error("Failed to load students for new session",
			zap.String("course_id", courseID),
			zap.Error(err),
		)
		return err
	}

	s, err := h.registry.Create(courseID, middleware.UserID(c))
	if err != nil {
		return domain.NewInternalError("failed to create session", err)
	}
	s.Controller.LoadPage(overview.Page)

	return c.Status(fiber.StatusCreated).JSON(dto.CreateSessionResponse{
		SessionID:      s.ID,
		CourseID:       courseID,
		MissingQuizzes: overview.MissingQuizzes,
		Session:        s.Controller.Snapshot(),
	})
}

// GetSession godoc
// @Summary Get session state
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(sessionResponse(s))
}

// ListStudents godoc
// @Summary Load a page of students
// @Description Searches the course roster and replaces the available pool. Chosen students stay chosen.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param q query string false "Search query"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.StudentPageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /sessions/{id}/students [get]
func (h *SessionHandler) ListStudents(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	query, page := middleware.StudentQuery(c)

	result, err := h.roster.Page(c.UserContext(), s.CourseID, query, page)
	if err != nil {
		logger.Get().Error("Failed to search students",
			zap.String("session_id", s.ID),
			zap.String("query", query),
			zap.Int("page", page),
			zap.Error(err),
		)
		return err
	}
	s.Controller.LoadPage(result)

	return c.JSON(dto.StudentPageResponse{Page: *result, Session: s.Controller.Snapshot()})
}

// ChooseStudent godoc
// @Summary Choose a student
// @Tags selection
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body dto.StudentRequest true "Student"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/choose [post]
func (h *SessionHandler) ChooseStudent(c *fiber.Ctx) error {
	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateStudent(req.ID, req.Label); len(errs) > 0 {
		return errs
	}

	s, err := h.session(c)
	if err != nil {
		return err
	}
	label := req.Label
	if label == "" {
		label = req.ID
	}
	if err := s.Controller.Choose(domain.Item{ID: req.ID, Label: label}); err != nil {
		return err
	}
	return c.JSON(sessionResponse(s))
}

// RecallStudent godoc
// @Summary Return a chosen student to the pool
// @Tags selection
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body dto.RecallRequest true "Student"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/recall [post]
func (h *SessionHandler) RecallStudent(c *fiber.Ctx) error {
	var req dto.RecallRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateStudentID(req.ID); len(errs) > 0 {
		return errs
	}

	s, err := h.session(c)
	if err != nil {
		return err
	}
	if err := s.Controller.Recall(req.ID); err != nil {
		return err
	}
	return c.JSON(sessionResponse(s))
}

// ClearSelection godoc
// @Summary Return every chosen student to the pool
// @Tags selection
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.ClearResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/clear [post]
func (h *SessionHandler) ClearSelection(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	n, err := s.Controller.ClearSelection()
	if err != nil {
		return err
	}
	return c.JSON(dto.ClearResponse{Cleared: n, Session: s.Controller.Snapshot()})
}

// SetPercent godoc
// @Summary Set the percent preset and override
// @Description A non-empty override disables the preset. Overrides below 100 or non-numeric are ignored.
// @Tags percent
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body dto.PercentRequest true "Percent inputs"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/percent [put]
func (h *SessionHandler) SetPercent(c *fiber.Ctx) error {
	var req dto.PercentRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidatePercent(req.Preset, req.Override); len(errs) > 0 {
		return errs
	}

	s, err := h.session(c)
	if err != nil {
		return err
	}
	if req.Preset != nil {
		if err := s.Controller.SetPreset(*req.Preset); err != nil {
			return err
		}
	}
	if req.Override != nil {
		if _, err := s.Controller.SetOverride(*req.Override); err != nil {
			return err
		}
	}
	return c.JSON(sessionResponse(s))
}

// Submit godoc
// @Summary Submit the extension request
// @Description Sends the chosen students with the effective percent and starts polling the refresh and update jobs
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 202 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) Submit(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	if err := s.Controller.Submit(c.UserContext()); err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(sessionResponse(s))
}

// Refresh godoc
// @Summary Refresh the course quiz list
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 202 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /sessions/{id}/refresh [post]
func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	if err := s.Controller.StartRefresh(c.UserContext()); err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(sessionResponse(s))
}

// Dismiss godoc
// @Summary Close the results and reset the form
// @Description Stops any polling, clears the selection and alerts, and shows the form again
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/dismiss [post]
func (h *SessionHandler) Dismiss(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	s.Controller.Dismiss()
	return c.JSON(sessionResponse(s))
}

// GetReport godoc
// @Summary Get the result report
// @Description Returns the report of the last completed update job. format=text returns the plain-text table only.
// @Tags jobs
// @Produce json
// @Produce plain
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param format query string false "json or text"
// @Success 200 {object} dto.ReportResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/report [get]
func (h *SessionHandler) GetReport(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	report, err := h.registry.Report(c.UserContext(), s)
	if err != nil {
		return err
	}
	text := h.reporter.Text(report)
	if c.Query("format") == "text" {
		return c.SendString(text)
	}
	return c.JSON(dto.ReportResponse{Report: *report, Text: text})
}

// DeleteSession godoc
// @Summary Close an operator session
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	if err := h.registry.Remove(c.UserContext(), c.Params("id"), middleware.CourseID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetAdvisory godoc
// @Summary Missing quizzes advisory
// @Description Reports whether the course has quizzes the tool does not know about yet
// @Tags advisory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AdvisoryResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /advisory [get]
func (h *SessionHandler) GetAdvisory(c *fiber.Ctx) error {
	missing, err := h.advisory.MissingQuizzes(c.UserContext(), middleware.CourseID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.AdvisoryResponse{MissingQuizzes: missing})
}
