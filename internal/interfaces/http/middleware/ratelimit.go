package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Pratham6392/shipment/internal/infrastructure/cache"
	"github.com/Pratham6392/shipment/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit returns a rate limiting middleware keyed by client IP
func RateLimit(store cache.RateLimitStore, logger *zap.Logger) gin.HandlerFunc {
	return RateLimitByKey(store, func(c *gin.Context) string {
		return c.ClientIP()
	}, logger)
}

// RateLimitByKey returns a rate limiting middleware with custom key extractor.
// Store errors let the request through: an unreachable Redis must not take
// label generation down with it.
func RateLimitByKey(store cache.RateLimitStore, keyFunc func(*gin.Context) string, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := keyFunc(c)

		res, err := store.Take(c.Request.Context(), key)
		if err != nil {
			logger.Warn("Rate limit store unavailable, allowing request",
				zap.String("key", key),
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			retryAfter := res.RetryAfter(time.Now())
			c.Header("Retry-After", strconv.Itoa(int((retryAfter+time.Second-1)/time.Second)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				dto.ErrCodeRateLimited,
				dto.MsgRateLimited,
				GetRequestID(c),
			))
			return
		}

		c.Next()
	}
}
