package validation

import (
	"strings"

	"quiz-extensions/internal/domain"
	"quiz-extensions/internal/util"
)

const (
	MaxStudentIDLength = 64
	MaxLabelLength     = 256
	MaxOverrideLength  = 10
	MaxQueryLength     = 100
	MaxPage            = 10000
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSessionID checks that id looks like a session id.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !util.IsULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", id))
	}
	return errors
}

// ValidateStudent validates a choose request.
func (v *Validator) ValidateStudent(id, label string) domain.ValidationErrors {
	errors := v.ValidateStudentID(id)
	if len(label) > MaxLabelLength {
		errors = append(errors, domain.NewOutOfRangeError("label", len(label), 0, MaxLabelLength))
	}
	return errors
}

// ValidateStudentID validates the opaque student id.
func (v *Validator) ValidateStudentID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if len(id) > MaxStudentIDLength {
		errors = append(errors, domain.NewOutOfRangeError("id", len(id), 1, MaxStudentIDLength))
	}
	return errors
}

// ValidatePercent validates the optional preset and override of a percent
// request. At least one of them must be present.
func (v *Validator) ValidatePercent(preset, override *string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if preset == nil && override == nil {
		errors = append(errors, domain.NewMissingFieldError("preset"))
		return errors
	}
	if preset != nil && strings.TrimSpace(*preset) == "" {
		errors = append(errors, domain.NewMissingFieldError("preset"))
	}
	// A non-numeric override is accepted here; the resolver ignores it.
	if override != nil && len(strings.TrimSpace(*override)) > MaxOverrideLength {
		errors = append(errors, domain.NewOutOfRangeError("override", len(*override), 0, MaxOverrideLength))
	}
	return errors
}

// ValidateStudentQuery validates the roster search query and page number.
func (v *Validator) ValidateStudentQuery(query string, page int) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if len(query) > MaxQueryLength {
		errors = append(errors, domain.NewOutOfRangeError("q", len(query), 0, MaxQueryLength))
	}
	if page < 1 || page > MaxPage {
		errors = append(errors, domain.NewOutOfRangeError("page", page, 1, MaxPage))
	}
	return errors
}
