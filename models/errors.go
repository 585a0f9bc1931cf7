package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError. The code, not the message, decides the
// response status class.
const (
	CodeMissingField       = "MISSING_FIELD"
	CodeTypeMismatch       = "TYPE_MISMATCH"
	CodeLengthViolation    = "LENGTH_VIOLATION"
	CodePatternViolation   = "PATTERN_VIOLATION"
	CodePathBodyIDMismatch = "PATH_BODY_ID_MISMATCH"
	CodeResourceNotFound   = "RESOURCE_NOT_FOUND"
	CodeForeignKeyNotFound = "FOREIGN_KEY_NOT_FOUND"
	CodeMalformedID        = "MALFORMED_IDENTIFIER"
	CodeDuplicateValue     = "DUPLICATE_VALUE"
	CodeStoreFailure       = "STORE_FAILURE"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors

func NewMissingFieldError(field string) *AppError {
	return &AppError{
		Code:    CodeMissingField,
		Message: fmt.Sprintf("The field '%s' is required", field),
	}
}

func NewTypeMismatchError(field, expected string) *AppError {
	return &AppError{
		Code:    CodeTypeMismatch,
		Message: fmt.Sprintf("The field '%s' must be of type %s", field, expected),
	}
}

func NewLengthViolationError(field string, min, max int) *AppError {
	var bound string
	switch {
	case min > 0 && max > 0:
		bound = fmt.Sprintf("between %d and %d characters", min, max)
	case min > 0:
		bound = fmt.Sprintf("at least %d characters", min)
	default:
		bound = fmt.Sprintf("at most %d characters", max)
	}
	return &AppError{
		Code:    CodeLengthViolation,
		Message: fmt.Sprintf("The field '%s' must be %s", field, bound),
	}
}

func NewPatternViolationError(field string) *AppError {
	return &AppError{
		Code:    CodePatternViolation,
		Message: fmt.Sprintf("The field '%s' has an invalid format", field),
	}
}

func NewPathBodyMismatchError() *AppError {
	return &AppError{
		Code:    CodePathBodyIDMismatch,
		Message: "Resource to update not found",
	}
}

func NewNotFoundError(kind string) *AppError {
	return &AppError{
		Code:    CodeResourceNotFound,
		Message: fmt.Sprintf("%s not found", kind),
	}
}

func NewForeignKeyError(kind, id string) *AppError {
	return &AppError{
		Code:    CodeForeignKeyNotFound,
		Message: fmt.Sprintf("%s with id '%s' does not exist", kind, id),
	}
}

func NewMalformedIDError(kind string) *AppError {
	return &AppError{
		Code:    CodeMalformedID,
		Message: fmt.Sprintf("Invalid %s id", strings.ToLower(kind)),
	}
}

func NewDuplicateValueError(field, value string) *AppError {
	return &AppError{
		Code:    CodeDuplicateValue,
		Message: fmt.Sprintf("'%s' is already in use. Please choose a different %s", value, field),
	}
}

func NewStoreError(err error) *AppError {
	return &AppError{
		Code:    CodeStoreFailure,
		Message: "Storage operation failed",
		Err:     err,
	}
}

// statusForCode maps an error code to the response status class. Not-found
// class codes become 404; everything else is client-attributable 400.
func statusForCode(code string) int {
	switch code {
	case CodeResourceNotFound, CodeForeignKeyNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadRequest
	}
}

// RespondWithError creates a standardized error response. Errors that are not
// an AppError are treated as store failures.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewStoreError(err)
	}

	response := ErrorResponse{
		Error: appErr.Message,
		Code:  appErr.Code,
	}
	if appErr.Err != nil {
		response.Details = appErr.Err.Error()
	}

	return c.Status(statusForCode(appErr.Code)).JSON(response)
}
