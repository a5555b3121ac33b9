package middleware

import (
	"net/http"
	"strconv"

	"routine-checkout/internal/handler/httperr"
	"routine-checkout/internal/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware admits requests per client. Attributed requests are
// keyed by creator code so one creator's burst cannot starve another sharing
// a NAT; everything else falls back to the client IP.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
}

func NewRateLimitMiddleware(limiter ratelimit.Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		result := m.limiter.Limit(clientKey(c))
		if !result.Allowed {
			httperr.AbortWithRetryAfter(c, http.StatusTooManyRequests, nil,
				"rate_limited", "Too many requests", result.Reset)
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Next()
	}
}

func clientKey(c *gin.Context) string {
	if code, ok := GetCreatorCode(c); ok {
		return "creator:" + code
	}
	return "ip:" + c.ClientIP()
}
