package dto

import "time"

// ErrorResponse is the JSON body of every failed request. The "error" key is
// always present; the form UI reads nothing else.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, requestID string) ErrorResponse {
	return ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestID,
	}
}

// GenerateLabelRequest is the body of a label request. Null, missing and
// empty waybills all fail the required rule.
type GenerateLabelRequest struct {
	Waybill string `json:"waybill" binding:"required,waybill"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
	Engine string    `json:"engine"`
}

// PingResponse is returned by the ping endpoint
type PingResponse struct {
	Message string `json:"message"`
}
