package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deppfellow/qna-api/internal/errs"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	rateLimitKeyPrefix = "qna:ratelimit:"
	rateLimitWindow    = time.Minute
	limiterIdleTTL     = 5 * time.Minute
	limiterSweepEvery  = time.Minute
)

// RateLimitMiddleware enforces a per-client-IP request budget.
//
// With Redis it counts requests in fixed one-minute windows shared by
// every instance. Without Redis, or while Redis is failing, each
// instance falls back to its own token buckets.
type RateLimitMiddleware struct {
	server *server.Server
	redis  *redis.Client
	local  *localLimiter
	limit  int
	now    func() time.Time
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	limit := 0
	if s.Config != nil && s.Config.RateLimit != nil && s.Config.RateLimit.Enabled {
		limit = max(s.Config.RateLimit.RequestsPerMinute, 1)
	}

	return &RateLimitMiddleware{
		server: s,
		redis:  s.Redis,
		local:  newLocalLimiter(limit),
		limit:  limit,
		now:    time.Now,
	}
}

// Limit returns the enforcing middleware, or a pass-through when rate
// limiting is disabled.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if r.limit == 0 {
			return next
		}

		return func(c echo.Context) error {
			if !r.allow(c.Request().Context(), c.RealIP()) {
				r.RecordRateLimitHit(c.Path())
				GetLogger(c).Warn().Str("ip", c.RealIP()).Msg("rate limit exceeded")
				return errs.NewTooManyRequestsError("Rate limit exceeded, try again later")
			}
			return next(c)
		}
	}
}

func (r *RateLimitMiddleware) allow(ctx context.Context, key string) bool {
	if r.redis != nil {
		allowed, err := r.allowRedis(ctx, key)
		if err == nil {
			return allowed
		}
		r.server.Logger.Warn().Err(err).Msg("redis rate limiter unavailable, using in-process limiter")
	}
	return r.local.allow(key, r.now())
}

func (r *RateLimitMiddleware) allowRedis(ctx context.Context, key string) (bool, error) {
	window := r.now().Truncate(rateLimitWindow).Unix()
	redisKey := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, key, window)

	var incr *redis.IntCmd
	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, rateLimitWindow)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}

	return incr.Val() <= int64(r.limit), nil
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

type bucket struct {
	limiter *rate.Limiter
	expires time.Time
}

// localLimiter keeps one token bucket per key. The bucket refills at
// limit tokens per minute with a burst of limit. Buckets untouched for
// limiterIdleTTL are dropped by a sweep that runs at most once every
// limiterSweepEvery.
type localLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	every     rate.Limit
	burst     int
	nextSweep time.Time
}

func newLocalLimiter(limit int) *localLimiter {
	limit = max(limit, 1)
	return &localLimiter{
		buckets: make(map[string]*bucket),
		every:   rate.Every(rateLimitWindow / time.Duration(limit)),
		burst:   limit,
	}
}

func (l *localLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !now.Before(l.nextSweep) {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.every, l.burst)}
		l.buckets[key] = b
	}
	b.expires = now.Add(limiterIdleTTL)

	return b.limiter.AllowN(now, 1)
}

func (l *localLimiter) sweep(now time.Time) {
	for k, b := range l.buckets {
		if now.After(b.expires) {
			delete(l.buckets, k)
		}
	}
	l.nextSweep = now.Add(limiterSweepEvery)
}
