package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"striketrack/backend/internal/server/httpjson"
)

// RateLimiterConfig holds the per-principal rate limit settings.
type RateLimiterConfig struct {
	Rate            rate.Limit    // sustained requests per second per principal
	Burst           int           // burst size per principal
	CleanupInterval time.Duration // how often idle entries are evicted
	IdleTTL         time.Duration // how long an entry may sit unused before eviction
}

// RateLimiterConfigForPerMinute builds a config from a requests-per-minute budget.
func RateLimiterConfigForPerMinute(perMinute int) RateLimiterConfig {
	return RateLimiterConfig{
		Rate:            rate.Limit(float64(perMinute) / 60.0),
		Burst:           perMinute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         10 * time.Minute,
	}
}

type userLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter enforces a token-bucket limit per authenticated principal.
// Must run after the auth middleware: the principal's user ID keys the bucket.
type RateLimiter struct {
	config RateLimiterConfig

	mu       sync.RWMutex
	limiters map[string]*userLimiter

	stopCh chan struct{}
}

// NewRateLimiter returns a RateLimiter and starts its background cleanup loop.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:   config,
		limiters: make(map[string]*userLimiter),
		stopCh:   make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop stops the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// Middleware returns the limiting middleware. Requests without an
// authenticated principal in context are rejected with 401.
func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok || userID == "" {
				httpjson.Error(w, http.StatusUnauthorized, "missing authorization token")
				return
			}
			if !rl.getOrCreate(userID).Allow() {
				slog.Warn("rate limit exceeded", slog.String("user_id", userID))
				httpjson.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LimiterCount returns the number of tracked principals. For tests and metrics.
func (rl *RateLimiter) LimiterCount() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) getOrCreate(userID string) *rate.Limiter {
	rl.mu.RLock()
	ul, exists := rl.limiters[userID]
	rl.mu.RUnlock()
	if exists {
		rl.mu.Lock()
		ul.lastAccess = time.Now()
		rl.mu.Unlock()
		return ul.limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if ul, exists := rl.limiters[userID]; exists {
		ul.lastAccess = time.Now()
		return ul.limiter
	}
	limiter := rate.NewLimiter(rl.config.Rate, rl.config.Burst)
	rl.limiters[userID] = &userLimiter{limiter: limiter, lastAccess: time.Now()}
	return limiter
}

func (rl *RateLimiter) cleanupLoop() {
	interval := rl.config.CleanupInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.config.IdleTTL)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for userID, ul := range rl.limiters {
		if ul.lastAccess.Before(cutoff) {
			delete(rl.limiters, userID)
		}
	}
}
