package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/D-dracula/MicroTools-sub001/internal/app/metrics"
	"github.com/D-dracula/MicroTools-sub001/internal/httputil"
	"github.com/D-dracula/MicroTools-sub001/pkg/logger"
)

// RedisRateLimiter applies a fixed-window limit shared across instances.
// A window key is incremented per request and expired after the window; the
// first increment in a window sets the TTL.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	log    *logger.Logger
}

// NewRedisRateLimiter creates a shared rate limiter allowing limit requests
// per window per client.
func NewRedisRateLimiter(client *redis.Client, limit int64, window time.Duration, log *logger.Logger) *RedisRateLimiter {
	if window <= 0 {
		window = time.Second
	}
	if log == nil {
		log = logger.NewDefault("ratelimit-redis")
	}
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		log:    log,
	}
}

// Handler returns the rate limiting middleware handler. Redis failures fail
// open so a cache outage does not take the API down.
func (rl *RedisRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := GetUserID(r.Context())
		if key == "" {
			key = clientIP(r)
		}
		windowKey := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(rl.window.Seconds()))

		count, err := rl.client.Incr(r.Context(), windowKey).Result()
		if err != nil {
			rl.log.WithError(err).Warn("redis rate limit check failed, allowing request")
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.client.Expire(r.Context(), windowKey, rl.window)
		}

		remaining := rl.limit - count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(rl.limit, 10))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > rl.limit {
			metrics.RecordRateLimited()
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			httputil.WriteError(w, http.StatusTooManyRequests, httputil.CodeRateLimited, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
