package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	rateLimitPeriod = 1 * time.Minute
	rateLimitCount  = 5 // อนุญาต 5 ครั้งต่อนาที
)

// RateLimiter limits requests per client IP using Redis INCR + EXPIRE.
// Without a Redis client (or when Redis misbehaves) requests pass through.
func RateLimiter(client *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		// ใช้ IP Address เป็น key
		ip := c.ClientIP()
		key := "rate_limit:" + ip

		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			c.Next()
			return
		}

		// ถ้าเป็นการสร้าง key ครั้งแรก (count == 1) ให้ตั้งเวลาหมดอายุ
		if count == 1 {
			client.Expire(c.Request.Context(), key, rateLimitPeriod)
		}

		if count > rateLimitCount {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
