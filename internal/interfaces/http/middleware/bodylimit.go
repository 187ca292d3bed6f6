package middleware

import (
	"net/http"

	"github.com/Pratham6392/shipment/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize is far above any real label request
const DefaultMaxBodySize int64 = 64 << 10

// BodyLimit rejects bodies declared larger than maxBytes and caps the rest
// with http.MaxBytesReader, so an undeclared oversize body fails decoding.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(
				dto.ErrCodeRequestTooLarge,
				dto.MsgRequestTooLarge,
				GetRequestID(c),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
