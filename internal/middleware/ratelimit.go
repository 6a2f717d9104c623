package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const rateLimitPrefix = "wallets:rl:"

// RateLimit caps requests per client IP to perMinute. With Redis the counter
// is shared across instances and expires a minute after the client's first
// request; without it each process keeps its own token buckets. A
// non-positive perMinute disables limiting.
func RateLimit(cache *redis.Client, perMinute int, logger *slog.Logger) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if cache != nil {
		return redisRateLimit(cache, perMinute, logger)
	}
	return localRateLimit(perMinute)
}

func redisRateLimit(cache *redis.Client, perMinute int, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := rateLimitPrefix + c.IP()

		cnt, err := cache.Incr(c.UserContext(), key).Result()
		if err != nil {
			// Fail open: an unavailable cache must not take the API down.
			if logger != nil {
				logger.Warn("rate limit lookup failed", slog.Any("error", err))
			}
			return c.Next()
		}
		if cnt == 1 {
			cache.Expire(c.UserContext(), key, time.Minute)
		}
		if cnt > int64(perMinute) {
			return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded, try again later")
		}
		return c.Next()
	}
}

// idleEviction is how long a client may stay silent before its bucket is
// dropped. A bucket refills completely within a minute, so a dropped bucket
// and a fresh one are indistinguishable.
const idleEviction = time.Minute

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// localLimiters holds per-client token buckets and sweeps idle ones so the
// map stays bounded by the number of recently active clients.
type localLimiters struct {
	mu        sync.Mutex
	every     rate.Limit
	burst     int
	buckets   map[string]*localBucket
	lastSweep time.Time
	now       func() time.Time
}

func newLocalLimiters(perMinute int) *localLimiters {
	return &localLimiters{
		every:   rate.Limit(float64(perMinute) / 60.0),
		burst:   perMinute,
		buckets: make(map[string]*localBucket),
		now:     time.Now,
	}
}

func (l *localLimiters) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= idleEviction {
		for key, b := range l.buckets {
			if now.Sub(b.lastSeen) >= idleEviction {
				delete(l.buckets, key)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[client]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(l.every, l.burst)}
		l.buckets[client] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (l *localLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func localRateLimit(perMinute int) fiber.Handler {
	limiters := newLocalLimiters(perMinute)
	return func(c *fiber.Ctx) error {
		if !limiters.allow(c.IP()) {
			return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded, try again later")
		}
		return c.Next()
	}
}
