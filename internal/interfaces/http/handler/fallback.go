package handler

import (
	"net/http"
	"strings"

	"github.com/Pratham6392/shipment/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// MethodNotAllowed answers requests whose path exists under another method.
// gin has already set the Allow header.
func MethodNotAllowed(c *gin.Context) {
	if c.Writer.Header().Get("Allow") == "" {
		c.Header("Allow", strings.Join([]string{http.MethodPost, http.MethodOptions}, ", "))
	}
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, dto.NewErrorResponse(
		dto.ErrCodeMethodNotAllowed,
		dto.MsgMethodNotAllowed,
		getRequestID(c),
	))
}

// NotFound answers unknown paths
func NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponse(
		dto.ErrCodeNotFound,
		dto.MsgNotFound,
		getRequestID(c),
	))
}
