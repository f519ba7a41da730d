package shared

import "errors"

// Error codes form the error taxonomy of the service. Handlers map these
// to transport-level status codes; nothing below the interface layer does.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeNotFound     = "NOT_FOUND"
	CodeDependency   = "DEPENDENCY_FAILED"
	CodeUnauthorized = "UNAUTHORIZED"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/errors.As
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports invalid input detected before any external call
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewConflictError reports a uniqueness violation (pre-check or storage constraint)
func NewConflictError(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}

// NewNotFoundError reports a missing resource
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewDependencyError reports a failed call to an external collaborator,
// preserving the underlying cause.
func NewDependencyError(message string, cause error) *DomainError {
	return &DomainError{Code: CodeDependency, Message: message, Cause: cause}
}

// NewAuthError reports a rejected authentication. All gateway-side failure
// reasons collapse into this one kind; the cause keeps the detail.
func NewAuthError(message string, cause error) *DomainError {
	return &DomainError{Code: CodeUnauthorized, Message: message, Cause: cause}
}

// Common domain errors
var (
	ErrNotFound = NewNotFoundError("resource not found")
)

// hasCode reports whether err carries a DomainError with the given code
func hasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// IsConflict reports whether err is a conflict error
func IsConflict(err error) bool { return hasCode(err, CodeConflict) }

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsDependency reports whether err is a dependency failure
func IsDependency(err error) bool { return hasCode(err, CodeDependency) }

// IsAuth reports whether err is an authentication rejection
func IsAuth(err error) bool { return hasCode(err, CodeUnauthorized) }
