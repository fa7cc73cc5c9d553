package middleware

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
)

// RateLimitConfig defines the limit for a specific route or group.
type RateLimitConfig struct {
	Max    int                      // Maximum requests allowed in the window
	Window time.Duration            // Time window for the limit
	KeyFn  func(c fiber.Ctx) string // Returns the key to rate limit on
}

type window struct {
	count int
	ends  time.Time
}

// RateLimiter is an in-memory fixed-window rate limiter.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	config  RateLimitConfig
	stopCh  chan struct{}
	once    sync.Once
}

// NewRateLimiter creates a rate limiter and starts its background sweeper.
// Call Stop to release the sweeper.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFn == nil {
		cfg.KeyFn = KeyByIP
	}
	rl := &RateLimiter{
		windows: make(map[string]*window),
		config:  cfg,
		stopCh:  make(chan struct{}),
	}
	go rl.sweep(5 * time.Minute)
	return rl
}

// Handler returns a Fiber middleware handler that enforces the rate limit.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		allowed, remaining, resetAt := rl.take(rl.config.KeyFn(c), time.Now())
		setRateLimitHeaders(c, rl.config.Max, remaining, resetAt)

		if !allowed {
			retryAfter := int(time.Until(resetAt).Seconds()) + 1
			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fiber.Map{
					"code":       "RATE_LIMITED",
					"message":    fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter),
					"retryAfter": retryAfter,
				},
			})
		}
		return c.Next()
	}
}

// Allow reports whether one more request for key fits in the current window.
func (rl *RateLimiter) Allow(key string) bool {
	allowed, _, _ := rl.take(key, time.Now())
	return allowed
}

// Stop terminates the background sweeper.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) take(key string, now time.Time) (allowed bool, remaining int, resetAt time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || now.After(w.ends) {
		w = &window{ends: now.Add(rl.config.Window)}
		rl.windows[key] = w
	}
	w.count++
	return w.count <= rl.config.Max, max(rl.config.Max-w.count, 0), w.ends
}

func setRateLimitHeaders(c fiber.Ctx, limit, remaining int, resetAt time.Time) {
	c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
	c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
	c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt.Unix()))
}

func (rl *RateLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, w := range rl.windows {
				if now.After(w.ends) {
					delete(rl.windows, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

// KeyByIP returns the client IP as the rate limit key.
func KeyByIP(c fiber.Ctx) string {
	return "ip:" + c.IP()
}

// KeyByToken keys on the bearer token when one is sent, otherwise the IP.
func KeyByToken(c fiber.Ctx) string {
	if tok, ok := strings.CutPrefix(c.Get("Authorization"), "Bearer "); ok && tok != "" {
		return "token:" + tok
	}
	return KeyByIP(c)
}

// --- Pre-configured limiters for the dashboard API ---

// NewLoginRateLimiter: 10 req/min per IP
func NewLoginRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{Max: 10, Window: time.Minute, KeyFn: KeyByIP})
}

// NewSyncRateLimiter: 30 req/min per token
func NewSyncRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{Max: 30, Window: time.Minute, KeyFn: KeyByToken})
}

// NewLookupRateLimiter: 30 req/min per token
func NewLookupRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{Max: 30, Window: time.Minute, KeyFn: KeyByToken})
}

// NewStrategyRateLimiter: 10 req/min per token
func NewStrategyRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{Max: 10, Window: time.Minute, KeyFn: KeyByToken})
}

// NewExportRateLimiter: 20 req/hour per IP
func NewExportRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{Max: 20, Window: time.Hour, KeyFn: KeyByIP})
}
