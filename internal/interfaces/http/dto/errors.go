package dto

import (
	"net/http"

	"github.com/Pratham6392/shipment/internal/domain/shared"
)

// Error codes returned in the "code" field of error bodies. Domain codes are
// passed through unchanged.
const (
	ErrCodeValidation       = shared.CodeValidation
	ErrCodeUpstream         = shared.CodeUpstream
	ErrCodeRender           = shared.CodeRender
	ErrCodeNotFound         = shared.CodeNotFound
	ErrCodeInternal         = shared.CodeInternal
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited      = "RATE_LIMITED"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
)

// Client-facing messages
const (
	MsgWaybillRequired  = "Waybill is required."
	MsgMethodNotAllowed = "Method not allowed"
	MsgNotFound         = "Not found"
	MsgRateLimited      = "Too many requests. Please try again later."
	MsgRequestTooLarge  = "Request body exceeds maximum allowed size"
	MsgProcessingFailed = "An error occurred while processing the request."
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeMethodNotAllowed: http.StatusMethodNotAllowed,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:      http.StatusTooManyRequests,

	// Carrier and drawing failures are the server's problem, not the caller's
	ErrCodeUpstream: http.StatusInternalServerError,
	ErrCodeRender:   http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsClientError reports whether code maps to a 4xx status
func IsClientError(code string) bool {
	status := GetHTTPStatus(code)
	return status >= 400 && status < 500
}
