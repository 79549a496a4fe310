package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter implements a simple token bucket rate limiter
type RateLimiter struct {
	mu           sync.Mutex
	now          func() time.Time
	tokens       map[string]int
	lastRefill   map[string]time.Time
	lastSweep    time.Time
	maxTokens    int
	refillRate   int           // tokens per refill
	refillPeriod time.Duration // how often to refill
}

// NewRateLimiter creates a new rate limiter
// maxTokens: maximum tokens per client
// refillRate: how many tokens to add per refill period
// refillPeriod: how often to refill tokens
func NewRateLimiter(maxTokens, refillRate int, refillPeriod time.Duration) *RateLimiter {
	return &RateLimiter{
		now:          time.Now,
		tokens:       make(map[string]int),
		lastRefill:   make(map[string]time.Time),
		maxTokens:    maxTokens,
		refillRate:   refillRate,
		refillPeriod: refillPeriod,
	}
}

// PerMinute allows n requests per minute per client, refilled gradually
func PerMinute(n int) *RateLimiter {
	if n < 1 {
		n = 1
	}
	refill := n / 10
	if refill < 1 {
		refill = 1
	}
	return NewRateLimiter(n, refill, time.Minute/time.Duration(n/refill))
}

// Allow checks if a request should be allowed for the given key
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	if _, exists := rl.tokens[key]; !exists {
		rl.tokens[key] = rl.maxTokens
		rl.lastRefill[key] = now
	}

	elapsed := now.Sub(rl.lastRefill[key])
	refills := int(elapsed / rl.refillPeriod)
	if refills > 0 {
		rl.tokens[key] += refills * rl.refillRate
		if rl.tokens[key] > rl.maxTokens {
			rl.tokens[key] = rl.maxTokens
		}
		rl.lastRefill[key] = rl.lastRefill[key].Add(time.Duration(refills) * rl.refillPeriod)
	}

	if rl.tokens[key] > 0 {
		rl.tokens[key]--
		return true
	}

	return false
}

// idleAfter is how long an untouched bucket takes to refill completely. A
// bucket idle that long is indistinguishable from a new one.
func (rl *RateLimiter) idleAfter() time.Duration {
	periods := (rl.maxTokens + rl.refillRate - 1) / rl.refillRate
	return time.Duration(periods) * rl.refillPeriod
}

// sweep drops full buckets at most once per idle interval. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	idle := rl.idleAfter()
	if now.Sub(rl.lastSweep) < idle {
		return
	}
	rl.lastSweep = now

	for key, last := range rl.lastRefill {
		if now.Sub(last) >= idle {
			delete(rl.tokens, key)
			delete(rl.lastRefill, key)
		}
	}
}

// Remaining returns the remaining tokens for a key
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.tokens[key]
}

// RateLimitMiddleware limits requests per token-verified client, falling
// back to the remote IP. The X-Client-ID header never selects the bucket.
func RateLimitMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if ClientVerified(c) {
			key = "client:" + GetClientID(c)
		}

		allowed := rl.Allow(key)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.Remaining(key)))
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxTokens))

		if !allowed {
			RespondErrorWithRetry(c, http.StatusTooManyRequests, ErrCodeRateLimited,
				"Too many requests, please try again later", int(rl.refillPeriod.Milliseconds()))
			return
		}

		c.Next()
	}
}
