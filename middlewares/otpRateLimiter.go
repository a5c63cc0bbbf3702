package middlewares

import (
	"net/http"
	"time"

	"nagarseva-be/config"

	"github.com/gin-gonic/gin"
)

// OTPRateLimiter caps send-otp requests per phone per hour via a Redis
// counter. A 4-digit code space needs this guard against brute forcing.
// Without Redis the limiter is a no-op.
func OTPRateLimiter(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.RedisClient == nil {
			c.Next()
			return
		}

		var body struct {
			Phone string `json:"phone"`
		}
		if err := c.ShouldBindBodyWithJSON(&body); err != nil || body.Phone == "" {
			// Let the handler produce the validation error.
			c.Next()
			return
		}

		ctx := config.Ctx
		phoneKey := "otp-limit:" + body.Phone

		count, err := config.RedisClient.Incr(ctx, phoneKey).Result()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error incrementing count"})
			c.Abort()
			return
		}

		// Set TTL only for the first increment (when count = 1)
		if count == 1 {
			if err := config.RedisClient.Expire(ctx, phoneKey, time.Hour).Err(); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error setting TTL"})
				c.Abort()
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := config.RedisClient.TTL(ctx, phoneKey).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
