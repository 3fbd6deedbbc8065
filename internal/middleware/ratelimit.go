package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
)

// RateLimitConfig defines the limit for a route or group.
type RateLimitConfig struct {
	Max    int                      // requests allowed per window
	Window time.Duration            // window length
	KeyFn  func(c fiber.Ctx) string // key the limit applies to
}

// window tracks the request count of one key.
type window struct {
	count int
	end   time.Time
}

// RateLimiter is an in-memory fixed-window rate limiter.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	config  RateLimitConfig
	now     func() time.Time
}

// NewRateLimiter creates a rate limiter with the given config. Expired
// windows are swept every five minutes.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		config:  cfg,
		now:     time.Now,
	}
	go rl.cleanup()
	return rl
}

// take counts one request for key and returns how many remain in the
// current window (negative once exceeded) and when it ends.
func (rl *RateLimiter) take(key string) (remaining int, end time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.After(w.end) {
		w = &window{end: now.Add(rl.config.Window)}
		rl.windows[key] = w
	}
	w.count++
	return rl.config.Max - w.count, w.end
}

// Handler returns a Fiber middleware handler that enforces the rate limit.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		remaining, end := rl.take(rl.config.KeyFn(c))

		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.config.Max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(max(remaining, 0)))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(end.Unix(), 10))

		if remaining < 0 {
			retryAfter := int(end.Sub(rl.now()).Seconds()) + 1
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return ErrorResponse(c, fiber.StatusTooManyRequests, "RATE_LIMITED",
				"Too many requests. Try again in "+strconv.Itoa(retryAfter)+" seconds.")
		}

		return c.Next()
	}
}

// Allow counts a request for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(key string) bool {
	remaining, _ := rl.take(key)
	return remaining >= 0
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		rl.mu.Lock()
		now := rl.now()
		for key, w := range rl.windows {
			if now.After(w.end) {
				delete(rl.windows, key)
			}
		}
		rl.mu.Unlock()
	}
}

// KeyByIP returns the client IP as the rate limit key.
func KeyByIP(c fiber.Ctx) string {
	return "ip:" + c.IP()
}

// NewResolveRateLimiter: 60 req/min per IP. Resolution scans the video
// index and is the most expensive read.
func NewResolveRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Max:    60,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})
}

// NewAPIRateLimiter: 300 req/min per IP for the other dashboard reads.
func NewAPIRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Max:    300,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})
}
