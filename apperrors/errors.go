// Package apperrors defines the typed failures surfaced by the planning and auth services.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure.
type Code string

const (
	CodeInvalidGoal           Code = "INVALID_GOAL"
	CodeValidation            Code = "VALIDATION_FAILED"
	CodeProviderUnavailable   Code = "PROVIDER_UNAVAILABLE"
	CodeMalformedPlanResponse Code = "MALFORMED_PLAN_RESPONSE"
	CodeDuplicateIdentity     Code = "DUPLICATE_IDENTITY"
	CodeNotFound              Code = "NOT_FOUND"
	CodeInvalidCredential     Code = "INVALID_CREDENTIAL"
	CodeUnauthorized          Code = "UNAUTHORIZED"
	CodeInternal              Code = "INTERNAL_ERROR"
)

// AppError is an error with a stable code, a user-facing message and optional debug details.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match two AppErrors by code.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// StatusCode maps the error code to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeInvalidGoal, CodeValidation:
		return http.StatusBadRequest
	case CodeInvalidCredential, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicateIdentity:
		return http.StatusConflict
	case CodeMalformedPlanResponse:
		return http.StatusBadGateway
	case CodeProviderUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithCause attaches the underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func New(code Code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// Sentinels usable with errors.Is.
var (
	ErrInvalidGoal           = New(CodeInvalidGoal, "invalid goal", "")
	ErrProviderUnavailable   = New(CodeProviderUnavailable, "provider unavailable", "")
	ErrMalformedPlanResponse = New(CodeMalformedPlanResponse, "malformed plan response", "")
	ErrDuplicateIdentity     = New(CodeDuplicateIdentity, "duplicate identity", "")
	ErrNotFound              = New(CodeNotFound, "not found", "")
	ErrInvalidCredential     = New(CodeInvalidCredential, "invalid credential", "")
)

func InvalidGoal(goal string) *AppError {
	return New(CodeInvalidGoal, fmt.Sprintf("unrecognized goal %q", goal),
		`expected one of "Lose Fat", "Gain Muscle", "Maintenance"`)
}

func Validation(details string) *AppError {
	return New(CodeValidation, "Validation failed", details)
}

func ProviderUnavailable(message string, cause error) *AppError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return New(CodeProviderUnavailable, message, details).WithCause(cause)
}

// MalformedPlanResponse keeps a preview of the raw provider text in Details for debugging.
func MalformedPlanResponse(preview string, cause error) *AppError {
	details := fmt.Sprintf("response preview: %s", preview)
	if cause != nil {
		details = fmt.Sprintf("%v | %s", cause, details)
	}
	return New(CodeMalformedPlanResponse, "AI returned an invalid plan, please try again", details).WithCause(cause)
}

func DuplicateIdentity(message string) *AppError {
	return New(CodeDuplicateIdentity, message, "")
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message, "")
}

func InvalidCredential(message string) *AppError {
	return New(CodeInvalidCredential, message, "")
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message, "")
}

func Internal(message string, cause error) *AppError {
	return New(CodeInternal, message, "").WithCause(cause)
}

// From returns err as an AppError, wrapping unknown errors as internal.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error", err)
}

// CodeOf extracts the code of err, or CodeInternal.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
