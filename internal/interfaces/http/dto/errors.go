package dto

import (
	"net/http"

	"github.com/stackfood/customers/internal/domain/shared"
)

// Transport-only error codes for failures that never reach the domain
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for unexpected internal errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps the domain error taxonomy plus transport codes
// onto HTTP status codes. Only this layer knows about HTTP statuses.
var errorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:   http.StatusBadRequest,
	shared.CodeConflict:     http.StatusConflict,
	shared.CodeNotFound:     http.StatusNotFound,
	shared.CodeUnauthorized: http.StatusUnauthorized,
	shared.CodeDependency:   http.StatusBadGateway,
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInternal:         http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
