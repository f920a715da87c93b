// internal/middleware/ratelimit_middleware.go
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"mediahub-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces a fixed request budget per client address over a
// rolling window. Requests beyond the budget are rejected with 429, not
// queued. When Redis itself is unavailable the limiter fails open so an
// infrastructure outage does not take the API down with it.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		ctx := c.Request.Context()

		count, err := r.client.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}

		// Set expiration on first request in the window
		if count == 1 {
			r.client.Expire(ctx, key, r.window)
		}

		if count > int64(r.limit) {
			response.Error(c, http.StatusTooManyRequests,
				"Too many requests from this IP, please try again later")
			return
		}

		c.Next()
	}
}
