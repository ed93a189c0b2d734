package middlewares

import (
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movision-server/internal/domain/ratelimit"
	"movision-server/internal/infrastructure/metrics"
)

// RateLimitMiddleware applies a fixed-window limiter keyed by client IP.
// A denied request gets a Retry-After header and a structured 429 body.
func RateLimitMiddleware(limiter *ratelimit.Limiter, limiterName, deniedMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := limiter.Check(rateKey(c))
		if !decision.Allowed {
			metrics.RateLimitRejectionsTotal.WithLabelValues(limiterName).Inc()
			c.Header("Retry-After", strconv.Itoa(decision.RetryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      deniedMessage,
				"retryAfter": decision.RetryAfter,
			})
			return
		}
		c.Next()
	}
}

func rateKey(c *gin.Context) string {
	if userID := UserIDFromContext(c); userID != "" {
		return "uid:" + userID
	}
	if ip := clientIP(c.ClientIP()); ip != "" {
		return "ip:" + ip
	}
	return ""
}

// Normalize IPv6-mapped IPv4 etc.
func clientIP(raw string) string {
	if raw == "" {
		return ""
	}
	if ip := net.ParseIP(raw); ip != nil {
		return ip.String()
	}
	return raw
}
