// Package apierrors provides structured API error codes and responses.
// All codes are namespaced (e.g., "core:unauthorized", "planning:invalid_window").
package apierrors

import "net/http"

// Core error codes - registered automatically at init
const (
	// Authentication & Authorization
	CodeUnauthorized = "core:unauthorized"
	CodeForbidden    = "core:forbidden"
	CodeInvalidToken = "core:invalid_token"
	CodeTokenExpired = "core:token_expired"

	// Request errors
	CodeInvalidRequest   = "core:invalid_request"
	CodeValidationFailed = "core:validation_failed"
	CodeInvalidID        = "core:invalid_id"

	// Resource errors
	CodeNotFound = "core:not_found"
	CodeConflict = "core:conflict"

	// Server errors
	CodeInternalError      = "core:internal_error"
	CodeServiceUnavailable = "core:service_unavailable"
)

// Planning, submission and resource error codes
const (
	CodeInvalidWindow  = "planning:invalid_window"
	CodeInvalidWeekKey = "planning:invalid_week_key"

	CodeWeekLocked       = "submissions:week_locked"
	CodeAlreadySubmitted = "submissions:already_submitted"
	CodeNotSubmitted     = "submissions:not_submitted"
	CodeGracePeriodOver  = "submissions:grace_period_over"

	CodeResourceAllocated = "resources:has_active_allocations"
	CodeDuplicateEmail    = "resources:duplicate_email"
	CodeInvalidDateRange  = "projects:invalid_date_range"
)

// registeredErrors defines all error codes with their default messages and HTTP status
var registeredErrors = []ErrorCode{
	// Authentication & Authorization
	{Code: CodeUnauthorized, Message: "Authentication required", HTTPStatus: http.StatusUnauthorized},
	{Code: CodeForbidden, Message: "Permission denied", HTTPStatus: http.StatusForbidden},
	{Code: CodeInvalidToken, Message: "Invalid or malformed token", HTTPStatus: http.StatusUnauthorized},
	{Code: CodeTokenExpired, Message: "Token has expired", HTTPStatus: http.StatusUnauthorized},

	// Request errors
	{Code: CodeInvalidRequest, Message: "Invalid request body", HTTPStatus: http.StatusBadRequest},
	{Code: CodeValidationFailed, Message: "Request validation failed", HTTPStatus: http.StatusBadRequest},
	{Code: CodeInvalidID, Message: "Invalid ID format", HTTPStatus: http.StatusBadRequest},

	// Resource errors
	{Code: CodeNotFound, Message: "Resource not found", HTTPStatus: http.StatusNotFound},
	{Code: CodeConflict, Message: "Resource conflict", HTTPStatus: http.StatusConflict},

	// Server errors
	{Code: CodeInternalError, Message: "Internal server error", HTTPStatus: http.StatusInternalServerError},
	{Code: CodeServiceUnavailable, Message: "Service temporarily unavailable", HTTPStatus: http.StatusServiceUnavailable},

	// Planning
	{Code: CodeInvalidWindow, Message: "Invalid date window", HTTPStatus: http.StatusBadRequest},
	{Code: CodeInvalidWeekKey, Message: "Invalid ISO week key", HTTPStatus: http.StatusBadRequest},

	// Submissions
	{Code: CodeWeekLocked, Message: "Week has been submitted and is locked for editing", HTTPStatus: http.StatusConflict},
	{Code: CodeAlreadySubmitted, Message: "Week has already been submitted", HTTPStatus: http.StatusConflict},
	{Code: CodeNotSubmitted, Message: "Week has not been submitted", HTTPStatus: http.StatusConflict},
	{Code: CodeGracePeriodOver, Message: "Unsubmit window has closed", HTTPStatus: http.StatusConflict},

	// Resources & projects
	{Code: CodeResourceAllocated, Message: "Resource has active allocations and cannot be deleted", HTTPStatus: http.StatusConflict},
	{Code: CodeDuplicateEmail, Message: "Email address is already in use", HTTPStatus: http.StatusConflict},
	{Code: CodeInvalidDateRange, Message: "Start date must not be after end date", HTTPStatus: http.StatusBadRequest},
}

func init() {
	// Register all error codes
	for _, e := range registeredErrors {
		Registry.Register(e)
	}
}
