package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/helper/utils"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// limiterIdle is how long a client's bucket survives without requests.
const limiterIdle = 3 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters keeps one token bucket per client key.
type clientLimiters struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

func newClientLimiters(rps int32, burst int32) *clientLimiters {
	return &clientLimiters{
		limit:   rate.Limit(rps),
		burst:   int(burst),
		idle:    limiterIdle,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

func (l *clientLimiters) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) >= l.idle {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *clientLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimit limits requests per second for each client IP. If
// requestsPerSecond <= 0, rate limiting is disabled.
func RateLimit(requestsPerSecond int32, burst int32) fiber.Handler {
	if requestsPerSecond <= 0 {
		return func(ctx *fiber.Ctx) error { return ctx.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	return rateLimit(newClientLimiters(requestsPerSecond, burst))
}

func rateLimit(limiters *clientLimiters) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !limiters.allow(ctx.IP()) {
			slog.Warn("Rate limit exceeded",
				slog.String("component", "RateLimit"),
				slog.String("remote_addr", ctx.IP()),
			)
			return utils.ResponseError(ctx, fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
		}
		return ctx.Next()
	}
}
