package dto

import "net/http"

// Error codes surfaced by the HTTP layer itself
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeRateLimited  = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes originate in internal/domain/shared and the application services;
// anything unmapped falls back to 500.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeRateLimited:  http.StatusTooManyRequests,

	// Schema and record validation failures
	"VALIDATION_ERROR":      http.StatusBadRequest,
	"TYPE_ERROR":            http.StatusBadRequest,
	"REFERENCE_ERROR":       http.StatusBadRequest,
	"UNRESOLVED_FIELD":      http.StatusBadRequest,
	"CYCLIC_FORMULA":        http.StatusBadRequest,
	"EVALUATION_ERROR":      http.StatusBadRequest,
	"CONFIG_ERROR":          http.StatusBadRequest,
	"INVALID_LABEL":         http.StatusBadRequest,
	"INVALID_FIELD_TYPE":    http.StatusBadRequest,
	"INVALID_APPLICABILITY": http.StatusBadRequest,
	"INVALID_INPUT":         http.StatusBadRequest,

	// Workflow and state failures
	"APPROVAL_ERROR": http.StatusUnprocessableEntity,
	"INVALID_STATE":  http.StatusUnprocessableEntity,

	// Referential in-use failures
	"FIELD_IN_USE":    http.StatusConflict,
	"CATEGORY_IN_USE": http.StatusConflict,
	"PARTNER_IN_USE":  http.StatusConflict,

	// Resource failures
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Identity failures
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_LOCKED":      http.StatusForbidden,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not mapped.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
