package middleware

import (
	"fmt"
	"time"

	"github.com/finance-tracker/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware applies a Redis-backed fixed-window limit per
// client IP and path. It fails open: a nil client or a Redis error lets
// the request through, so an unavailable Redis never locks users out.
func RateLimitMiddleware(rdb *redis.Client, requestsPerMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || requestsPerMinute <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.FullPath())

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			LogError("rate limiter unavailable: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, time.Minute)
		}

		if count > int64(requestsPerMinute) {
			response.TooManyRequests(c, "too many requests, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
