package shared

import "errors"

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

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code.
// This lets callers match on the package-level sentinels with errors.Is.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error that keeps the cause for errors.Is/As
func WrapDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Error codes shared by every bounded context
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeUpstream   = "UPSTREAM_ERROR"
	CodeRender     = "RENDER_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL_ERROR"
)

// Common domain errors
var (
	ErrValidation = NewDomainError(CodeValidation, "Invalid input provided")
	ErrUpstream   = NewDomainError(CodeUpstream, "Upstream service failed")
	ErrRender     = NewDomainError(CodeRender, "Document rendering failed")
	ErrNotFound   = NewDomainError(CodeNotFound, "Resource not found")
)
