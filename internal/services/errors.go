package services

import (
	"errors"

	"github.com/SAP-F-2025/course-service/internal/validator"
)

// ===== DOMAIN ERRORS =====

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")

	ErrAlreadyEnrolled      = errors.New("already enrolled")
	ErrInvalidEnrollmentKey = errors.New("invalid enrollment key")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidGrade         = errors.New("grade must be a number")

	ErrMediaUnavailable = errors.New("media storage is not configured")
	ErrMediaFetchFailed = errors.New("file not found or fetch failed")

	// Generic errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Validation errors are produced by the validator package.
type ValidationErrors = validator.ValidationErrors
type ValidationError = validator.ValidationError

// NewValidationError builds a single-field validation failure.
func NewValidationError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message, Rule: "business_logic"}}
}
