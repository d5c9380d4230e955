package middleware

import (
	"fmt"
	"net/http"
	"time"

	"conectacg_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window per-IP limiter backed by Redis. With a nil
// client it becomes a no-op, so the API still serves when Redis is down or
// unconfigured.
type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Limit allows max requests per window per client IP on the wrapped routes.
// name namespaces the counter so different route groups get independent
// windows. Limiter errors fail open.
func (rl *RateLimiter) Limit(name string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.client == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())

		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			logger.CtxWarn(ctx, "rate limiter unavailable, failing open", "error", err.Error())
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(ctx, key, window)
		}

		if count > int64(max) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Muitas requisições. Tente novamente em instantes.",
			})
			return
		}
		c.Next()
	}
}
