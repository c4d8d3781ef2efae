package dto

import (
	"errors"
	"net/http"

	"github.com/borrowtrack/backend/internal/domain/shared"
)

// Detail messages used for non-field errors
const (
	DetailNotFound         = "Not found."
	DetailServerError      = "A server error occurred."
	DetailThrottled        = "Request was throttled."
	DetailTooLarge         = "Request body exceeds maximum allowed size."
	DetailMethodNotAllowed = "Method not allowed."
)

// Domain error codes that map to something other than 400
const (
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes missing from the map are client input errors and yield 400.
var ErrorCodeHTTPStatus = map[string]int{
	CodeNotFound:     http.StatusNotFound,
	CodeInternal:     http.StatusInternalServerError,
	CodeUnauthorized: http.StatusUnauthorized,
	CodeForbidden:    http.StatusForbidden,
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}

// DetailBody is the `{"detail": "..."}` error shape
type DetailBody struct {
	Detail string `json:"detail"`
}

// FieldErrors is the `{"field": ["message", ...]}` error shape
type FieldErrors map[string][]string

// Add appends a message for field
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// NewDetail builds a detail body
func NewDetail(message string) DetailBody {
	return DetailBody{Detail: message}
}

// ErrorResponse converts err to a status code and response body.
// Domain errors carrying field messages become FieldErrors; other domain
// errors become a detail body; anything else is a 500.
func ErrorResponse(err error) (int, any) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError, NewDetail(DetailServerError)
	}

	status := GetHTTPStatus(domainErr.Code)
	if len(domainErr.Fields) > 0 && status == http.StatusBadRequest {
		fields := make(FieldErrors, len(domainErr.Fields))
		for field, msgs := range domainErr.Fields {
			fields[field] = append([]string(nil), msgs...)
		}
		return status, fields
	}
	if status == http.StatusNotFound {
		return status, NewDetail(DetailNotFound)
	}
	return status, NewDetail(domainErr.Message)
}
