package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeInvalidJSON = "INVALID_JSON"
)

// Authentication and authorization error codes
const (
	ErrCodeUnauthorized = "UNAUTHENTICATED"
	ErrCodeForbidden    = "FORBIDDEN"
)

// Resource error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONCURRENCY_CONFLICT"
)

// domainErrorStatus maps domain error codes to HTTP status codes.
// Codes absent here fall through to the prefix rules in GetHTTPStatus.
var domainErrorStatus = map[string]int{
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	"UNAUTHORIZED":      http.StatusUnauthorized,
	"SESSION_EXPIRED":   http.StatusUnauthorized,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Auth flow
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_LOCKED":      http.StatusUnauthorized,
	"ACCOUNT_DISABLED":    http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"USER_NOT_FOUND":      http.StatusNotFound,
	"EMAIL_TAKEN":         http.StatusConflict,

	// Branch administration
	"BRANCH_NOT_FOUND": http.StatusNotFound,
	"BRANCH_EXISTS":    http.StatusConflict,
	"BRANCH_NOT_EMPTY": http.StatusUnprocessableEntity,
	"BRANCH_REQUIRED":  http.StatusBadRequest,
	"NO_MEMBER_RECORD": http.StatusUnprocessableEntity,
	"EMPTY_IMPORT":     http.StatusBadRequest,

	// Transfer workflow
	"SAME_BRANCH":   http.StatusUnprocessableEntity,
	"INVALID_STATE": http.StatusConflict,

	// Streaming and engagement
	"RECORDING_NOT_FOUND": http.StatusUnprocessableEntity,
	"NOT_ARCHIVED":        http.StatusUnprocessableEntity,
	"EVENT_FULL":          http.StatusUnprocessableEntity,
	"EVENT_PAST":          http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Validation-style codes (INVALID_*) map to 400; anything unknown is a
// business rule violation, 422, never a 5xx.
func GetHTTPStatus(code string) int {
	if status, ok := domainErrorStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}
