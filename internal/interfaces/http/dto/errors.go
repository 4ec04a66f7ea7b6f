package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain error codes (NOT_FOUND, IN_USE,
// DUPLICATE_BARCODE, ...) are passed through to clients unchanged; these
// codes cover failures that never reach the domain.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "INVALID_JSON"
)

// domainCodeHTTPStatus maps the cross-cutting domain error codes to HTTP
// status codes. Codes not listed here fall through to the prefix rules in
// HTTPStatusForDomainCode.
var domainCodeHTTPStatus = map[string]int{
	"NOT_FOUND":                http.StatusNotFound,
	"ALREADY_EXISTS":           http.StatusConflict,
	"IN_USE":                   http.StatusConflict,
	"CONCURRENCY_CONFLICT":     http.StatusConflict,
	"INVALID_INPUT":            http.StatusBadRequest,
	"INVALID_STATE":            http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":       http.StatusUnprocessableEntity,
	"INSUFFICIENT_BALANCE":     http.StatusUnprocessableEntity,
	"STOCK_WOULD_GO_NEGATIVE":  http.StatusUnprocessableEntity,
	"DEDUCTION_MISMATCH":       http.StatusUnprocessableEntity,
	"RETURN_EXCEEDS_REMAINING": http.StatusUnprocessableEntity,
	"EXCEEDS_REMAINING":        http.StatusUnprocessableEntity,
	"SAME_LOCATION_TRANSFER":   http.StatusUnprocessableEntity,
	"SAME_SAFE_TRANSFER":       http.StatusUnprocessableEntity,
	"DUPLICATE_BARCODE":        http.StatusConflict,
	"UNKNOWN_BARCODE":          http.StatusNotFound,

	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
}

// HTTPStatusForDomainCode returns the HTTP status for a domain error code.
// Unlisted codes are classified by their naming convention; anything
// unrecognized is treated as a business rule violation rather than a server
// fault, since domain errors are by construction client-caused.
func HTTPStatusForDomainCode(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "_EXISTS"), strings.HasSuffix(code, "_IN_USE"):
		return http.StatusConflict
	case strings.HasPrefix(code, "INVALID_"),
		strings.HasPrefix(code, "MISSING_"),
		strings.HasPrefix(code, "EMPTY_"),
		strings.HasPrefix(code, "DUPLICATE_"),
		strings.HasPrefix(code, "UNKNOWN_"):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}
