package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RateLimitConfig describes one fixed window.
type RateLimitConfig struct {
	// MaxRequests allowed per Window and key.
	MaxRequests int
	Window      time.Duration
	KeyPrefix   string
}

// PublicFormRateLimitConfig covers the confirmation-code and submission endpoints.
func PublicFormRateLimitConfig(maxRequests int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{MaxRequests: maxRequests, Window: window, KeyPrefix: "rl:public"}
}

// AuthRateLimitConfig is stricter; it guards password and code guessing.
func AuthRateLimitConfig(maxRequests int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{MaxRequests: maxRequests, Window: window, KeyPrefix: "rl:auth"}
}

// Limiter builds rate limiting middleware.
type Limiter interface {
	Limit(cfg RateLimitConfig) gin.HandlerFunc
}

// RateLimiter counts requests per client IP and route in Redis.
type RateLimiter struct {
	redisClient redis.UniversalClient
}

// NewRateLimiter creates a Redis-backed limiter.
func NewRateLimiter(redisClient redis.UniversalClient) *RateLimiter {
	return &RateLimiter{redisClient: redisClient}
}

// Limit returns middleware enforcing cfg. Redis failures let the request through.
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		key := fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, clientIP, routeOf(c))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			zap.L().Warn("rate limiter unavailable, allowing request", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := rl.redisClient.Expire(ctx, key, cfg.Window).Err(); err != nil {
				zap.L().Warn("rate limiter failed to set window", zap.String("key", key), zap.Error(err))
			}
		}

		ttl, _ := rl.redisClient.TTL(ctx, key).Result()
		retryAfter := int(ttl.Seconds())
		if retryAfter < 0 {
			retryAfter = int(cfg.Window.Seconds())
		}

		remaining := cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(retryAfter))

		if int(count) > cfg.MaxRequests {
			zap.L().Info("rate limit exceeded",
				zap.String("ip", clientIP),
				zap.String("path", routeOf(c)),
				zap.Int64("count", count))
			tooManyRequests(c, retryAfter)
			return
		}
		c.Next()
	}
}

// NoopLimiter never limits.
type NoopLimiter struct{}

func (NoopLimiter) Limit(RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}

func routeOf(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}

func tooManyRequests(c *gin.Context, retryAfter int) {
	c.Header("Retry-After", strconv.Itoa(retryAfter))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":       "Too many requests. Please try again later.",
		"error_type":  "rate_limited",
		"retry_after": retryAfter,
	})
}
