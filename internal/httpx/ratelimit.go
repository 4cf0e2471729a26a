package httpx

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eklimov/order-management-api/internal/redisx"
)

// RateLimiter is a fixed-window counter on Redis keyed per client IP.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: limit, window: window, log: log, now: time.Now}
}

// Allow counts a hit for the client in the current window. Redis being
// unreachable fails open: limiting is protection, not a dependency.
func (l *RateLimiter) Allow(ctx context.Context, client string) bool {
	windowStart := l.now().Unix() / int64(l.window/time.Second)
	key := fmt.Sprintf(redisx.KeyRateLimit, client, windowStart)

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.log.Warn().Err(err).Msg("rate limit check failed, allowing request")
		return true
	}
	return incr.Val() <= int64(l.limit)
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(r.Context(), r.RemoteAddr) {
			writeJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
