package dto

import (
	"quiz-extensions/internal/domain"
	"quiz-extensions/internal/service"
)

// CreateSessionResponse is returned when an operator session is opened.
// @Description Newly created operator session
type CreateSessionResponse struct {
	SessionID      string           `json:"session_id"`
	CourseID       string           `json:"course_id"`
	MissingQuizzes bool             `json:"missing_quizzes"`
	Session        service.Snapshot `json:"session"`
}

// SessionResponse wraps a controller snapshot.
// @Description Current state of an operator session
type SessionResponse struct {
	SessionID string           `json:"session_id"`
	Session   service.Snapshot `json:"session"`
}

// StudentRequest identifies one student to choose.
// @Description Student to add to the chosen set
type StudentRequest struct {
	ID    string `json:"id" validate:"required"`
	Label string `json:"label"`
}

// RecallRequest identifies one chosen student to return to the pool.
// @Description Student to remove from the chosen set
type RecallRequest struct {
	ID string `json:"id" validate:"required"`
}

// PercentRequest updates one or both percent inputs. Omitted fields are left
// unchanged; an empty override clears it.
// @Description Percent preset and override
type PercentRequest struct {
	Preset   *string `json:"preset,omitempty"`
	Override *string `json:"override,omitempty"`
}

// StudentPageResponse is one roster page plus the refreshed session.
// @Description One page of students
type StudentPageResponse struct {
	Page    domain.StudentPage `json:"page"`
	Session service.Snapshot   `json:"session"`
}

// ClearResponse reports how many students were returned to the pool.
type ClearResponse struct {
	Cleared int              `json:"cleared"`
	Session service.Snapshot `json:"session"`
}

// ReportResponse carries the result report and its plain-text rendering.
// @Description Result report of the last update job
type ReportResponse struct {
	Report domain.ResultReport `json:"report"`
	Text   string              `json:"text"`
}

// AdvisoryResponse drives the missing-quizzes banner.
// @Description Missing quizzes advisory
type AdvisoryResponse struct {
	MissingQuizzes bool `json:"missing_quizzes"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}
