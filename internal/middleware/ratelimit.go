package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
)

type RateLimiterConfig struct {
	PerMinute       float64
	Burst           int
	CleanupInterval time.Duration
}

type ipLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter limita requisições por IP de origem (usado no login).
type RateLimiter struct {
	limit rate.Limit
	burst int
	ttl   time.Duration

	mu       sync.Mutex
	limiters map[string]*ipLimiter

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.PerMinute <= 0 {
		cfg.PerMinute = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}

	rl := &RateLimiter{
		limit:    rate.Limit(cfg.PerMinute / 60.0),
		burst:    cfg.Burst,
		ttl:      cfg.CleanupInterval * 2,
		limiters: make(map[string]*ipLimiter),
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop(cfg.CleanupInterval)
	return rl
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !rl.get(ip).Allow() {
			retry := int(math.Ceil(1.0 / float64(rl.limit)))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))

			slog.Warn("rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", c.FullPath()),
			)
			httperr.Write(c, http.StatusTooManyRequests, "rate_limit_exceeded", "Muitas tentativas. Aguarde e tente novamente.")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) count() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if l, ok := rl.limiters[key]; ok {
		l.lastAccess = time.Now()
		return l.limiter
	}

	l := &ipLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst), lastAccess: time.Now()}
	rl.limiters[key] = l
	return l.limiter
}

func (rl *RateLimiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, l := range rl.limiters {
		if now.Sub(l.lastAccess) > rl.ttl {
			delete(rl.limiters, key)
		}
	}
}
