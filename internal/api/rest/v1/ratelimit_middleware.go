package v1

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Hempp/street-art-gallery/internal/pkg/config"
)

// RateLimitMiddleware provides per-client-IP rate limiting for the public
// endpoints. A nil middleware is a no-op, which keeps wiring simple when
// rate limiting is disabled.
type RateLimitMiddleware struct {
	limiters    map[string]*rate.Limiter
	mu          sync.RWMutex
	limit       rate.Limit
	burst       int
	perMinute   int
	cleanupTick *time.Ticker
}

// NewRateLimitMiddleware builds a rate limiter from the configured
// requests-per-minute budget. It returns nil when rate limiting is disabled.
func NewRateLimitMiddleware(settings *config.RateLimitSettings) *RateLimitMiddleware {
	if settings == nil || settings.RequestsPerMinute <= 0 {
		return nil
	}

	burst := settings.Burst
	if burst <= 0 {
		burst = settings.RequestsPerMinute
	}

	middleware := &RateLimitMiddleware{
		limiters:    make(map[string]*rate.Limiter),
		limit:       rate.Every(time.Minute / time.Duration(settings.RequestsPerMinute)),
		burst:       burst,
		perMinute:   settings.RequestsPerMinute,
		cleanupTick: time.NewTicker(5 * time.Minute),
	}

	go middleware.cleanup()

	return middleware
}

// Handler returns the gin middleware function.
func (rl *RateLimitMiddleware) Handler() gin.HandlerFunc {
	if rl == nil {
		return func(ctx *gin.Context) { ctx.Next() }
	}

	return func(ctx *gin.Context) {
		limiter := rl.getLimiter(ctx.ClientIP())

		if !limiter.Allow() {
			retryAfter := int(time.Minute.Seconds()) / rl.perMinute
			if retryAfter < 1 {
				retryAfter = 1
			}
			ctx.Header("Retry-After", strconv.Itoa(retryAfter))
			ctx.Header("X-RateLimit-Limit", strconv.Itoa(rl.perMinute))
			ctx.Header("X-RateLimit-Remaining", "0")

			var errorResponse ErrorResponse
			errorResponse.Message = "rate limit exceeded, try again later"
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse)
			return
		}

		ctx.Next()
	}
}

// getLimiter gets or creates the rate limiter for the given client IP.
func (rl *RateLimitMiddleware) getLimiter(clientIP string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[clientIP]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Double-check after acquiring the write lock
	if limiter, exists := rl.limiters[clientIP]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rl.limit, rl.burst)
	rl.limiters[clientIP] = limiter

	return limiter
}

// cleanup periodically drops idle limiters to keep the map bounded. A
// limiter whose token bucket is full has not been used recently.
func (rl *RateLimitMiddleware) cleanup() {
	for range rl.cleanupTick.C {
		rl.mu.Lock()
		for key, limiter := range rl.limiters {
			if limiter.Tokens() >= float64(rl.burst) {
				delete(rl.limiters, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Stop halts the cleanup ticker.
func (rl *RateLimitMiddleware) Stop() {
	if rl == nil {
		return
	}
	rl.cleanupTick.Stop()
}
