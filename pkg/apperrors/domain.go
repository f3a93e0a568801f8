package apperrors

import (
	"net/http"
)

// Factories for domain errors raised by the plan lifecycle.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and friends)
// into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrMissingDates rejects an activation batch before any mutation: every item
// must carry a full validity window.
func ErrMissingDates(details interface{}) *AppError {
	return New(CodeValidationFailed, "activation",
		"Every item must have a start and end date before activation",
		http.StatusBadRequest).WithDetails(details)
}

// ErrInvalidDateRange rejects a window whose end precedes its start.
func ErrInvalidDateRange(details interface{}) *AppError {
	return New(CodeValidationFailed, "activation",
		"End date must not be before start date",
		http.StatusBadRequest).WithDetails(details)
}

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)
