package middleware

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalRateLimiter keeps a token bucket per client IP and route in process
// memory. It is used when Redis is disabled.
type LocalRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	idle     time.Duration
	now      func() time.Time
}

// NewLocalRateLimiter creates a limiter whose idle buckets are dropped after idle.
func NewLocalRateLimiter(idle time.Duration) *LocalRateLimiter {
	if idle <= 0 {
		idle = 10 * time.Minute
	}
	return &LocalRateLimiter{
		visitors: make(map[string]*visitor),
		idle:     idle,
		now:      time.Now,
	}
}

// Limit allows cfg.MaxRequests in a burst, refilled evenly over cfg.Window.
func (l *LocalRateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	every := rate.Every(cfg.Window / time.Duration(max(cfg.MaxRequests, 1)))
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, c.ClientIP(), routeOf(c))
		lim := l.get(key, every, cfg.MaxRequests)
		if !lim.Allow() {
			retryAfter := int(math.Ceil(cfg.Window.Seconds() / float64(max(cfg.MaxRequests, 1))))
			tooManyRequests(c, retryAfter)
			return
		}
		c.Next()
	}
}

func (l *LocalRateLimiter) get(key string, every rate.Limit, burst int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idle {
			delete(l.visitors, k)
		}
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(every, max(burst, 1))}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}
