package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Controller errors
	CodeSessionNotFound  ErrorCode = "SESSION_NOT_FOUND"
	CodeEmptySelection   ErrorCode = "EMPTY_SELECTION"
	CodeInputsLocked     ErrorCode = "INPUTS_LOCKED"
	CodeSubmitInProgress ErrorCode = "SUBMIT_IN_PROGRESS"
	CodeUnknownPreset    ErrorCode = "UNKNOWN_PRESET"
	CodeReportNotReady   ErrorCode = "REPORT_NOT_READY"

	// Job service errors
	CodeSubmissionTransport   ErrorCode = "SUBMISSION_TRANSPORT_ERROR"
	CodePollTransport         ErrorCode = "POLL_TRANSPORT_ERROR"
	CodeServerReportedFailure ErrorCode = "SERVER_REPORTED_FAILURE"
	CodeRefreshCascade        ErrorCode = "REFRESH_FAILURE_CASCADE"
	CodeDataSource            ErrorCode = "DATA_SOURCE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches another DomainError by code, so sentinel errors work with errors.Is.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail that the error handler echoes to the client.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Sentinels for errors.Is checks.
var (
	ErrEmptySelection   = NewError(CodeEmptySelection, "select at least one student before submitting", nil)
	ErrInputsLocked     = NewError(CodeInputsLocked, "selection and percent are locked while a job is in progress", nil)
	ErrSubmitInProgress = NewError(CodeSubmitInProgress, "a submission is already in progress", nil)
	ErrSessionNotFound  = NewError(CodeSessionNotFound, "session not found", nil)
	ErrReportNotReady   = NewError(CodeReportNotReady, "no result report is available yet", nil)
)

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnauthorizedError(message string, err error) *DomainError {
	return NewError(CodeUnauthorized, message, err)
}

func NewUnknownPresetError(preset string) *DomainError {
	return NewError(CodeUnknownPreset, fmt.Sprintf("unknown percent preset: %s", preset), nil)
}

func NewSubmissionTransportError(err error) *DomainError {
	return NewError(CodeSubmissionTransport, "failed to submit the extension request", err)
}

func NewPollTransportError(jobURL string, err error) *DomainError {
	return NewError(CodePollTransport, fmt.Sprintf("failed to poll job %s", jobURL), err)
}

func NewServerReportedFailure(statusMsg string) *DomainError {
	return NewError(CodeServerReportedFailure, statusMsg, nil)
}

func NewRefreshCascadeError(cause error) *DomainError {
	return NewError(CodeRefreshCascade, "refresh failed; update was cancelled", cause)
}

func NewDataSourceError(err error) *DomainError {
	return NewError(CodeDataSource, "failed to load students", err)
}

// ValidationError describes one invalid request field.
type ValidationError struct {
	Code    ErrorCode   `json:"code"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field problem of a request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Code: CodeMissingField, Field: field, Message: "field is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Code: CodeInvalidFormat, Field: field, Message: "invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Code:    CodeOutOfRange,
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d", min, max),
		Value:   value,
	}
}
