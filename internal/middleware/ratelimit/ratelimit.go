// Package ratelimit limits how often a client may hit an endpoint within a
// fixed window.
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/affiliate_store/internal/logging"
)

type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// RedisLimiter counts hits per key in a fixed window. The window starts with
// the first hit and expires with the key.
type RedisLimiter struct {
	Client *redis.Client
	Limit  int
	Window time.Duration
	Prefix string
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{Client: client, Limit: limit, Window: window, Prefix: "ratelimit:login:"}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	k := l.Prefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		ttl = p.PTTL(ctx, k)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("rate limit %s: %w", k, err)
	}

	count := incr.Val()
	left := ttl.Val()
	if count == 1 || left < 0 {
		if err := l.Client.PExpire(ctx, k, l.Window).Err(); err != nil {
			return Result{}, fmt.Errorf("rate limit expire %s: %w", k, err)
		}
		left = l.Window
	}

	remaining := l.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= int64(l.Limit),
		Limit:     l.Limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(left),
	}, nil
}

// KeyFunc picks the bucket a request counts against.
type KeyFunc func(c echo.Context) string

func ByIP(c echo.Context) string { return c.RealIP() }

// Middleware rejects requests over the limit with 429. Limiter errors let the
// request through. onLimited may be nil.
func Middleware(limiter Limiter, key KeyFunc, onLimited func()) echo.MiddlewareFunc {
	if key == nil {
		key = ByIP
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := logging.FromContext(req.Context()).With("middleware", "ratelimit")

			k := key(c)
			res, err := limiter.Allow(req.Context(), k)
			if err != nil {
				l.Error("rate_limit_check_failed", "key", k, "error", err)
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				retry := int(time.Until(res.ResetAt).Seconds()) + 1
				if retry < 1 {
					retry = 1
				}
				h.Set("Retry-After", strconv.Itoa(retry))
				if onLimited != nil {
					onLimited()
				}
				l.Warn("rate_limited", "status", 429, "key", k, "path", req.URL.Path)
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
