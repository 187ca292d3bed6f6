package handler

import (
	"errors"
	"net/http"

	"github.com/Pratham6392/shipment/internal/domain/shared"
	"github.com/Pratham6392/shipment/internal/interfaces/http/dto"
	"github.com/Pratham6392/shipment/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID returns the ID set by the RequestID middleware, falling back
// to the raw header when the middleware is not installed
func getRequestID(c *gin.Context) string {
	if id := middleware.GetRequestID(c); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Error sends a JSON error body with the given status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, dto.NewErrorResponse(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 validation error
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, dto.MsgProcessingFailed)
}

// HandleError converts err into an error response. Domain errors keep their
// code; messages are only shown for client errors, since server-side causes
// may carry carrier or engine details.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		h.InternalError(c)
		return
	}

	message := dto.MsgProcessingFailed
	if dto.IsClientError(domainErr.Code) {
		message = domainErr.Message
	}
	h.ErrorWithCode(c, domainErr.Code, message)
}
