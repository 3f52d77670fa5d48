package middleware

import (
	"StyleAdvisor/pkg/redis"
	"StyleAdvisor/pkg/response"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

var (
	ErrTooManyRequests = response.NewError(http.StatusTooManyRequests, "too many requests")
)

type rateLimiter struct {
	bucket    map[string]*rate.Limiter
	rate      rate.Limit
	burstSize int
	mutex     *sync.RWMutex
	store     redis.IRedis
}

func newRateLimiter(reqRate rate.Limit, burstSize int, store redis.IRedis) *rateLimiter {
	return &rateLimiter{
		bucket:    make(map[string]*rate.Limiter),
		rate:      reqRate,
		burstSize: burstSize,
		mutex:     &sync.RWMutex{},
		store:     store,
	}
}

func (r *rateLimiter) GetLimiterFrom(ip string) *rate.Limiter {
	r.mutex.RLock()
	limiter, exist := r.bucket[ip]
	r.mutex.RUnlock()
	if exist {
		return limiter
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exist := r.bucket[ip]; !exist {
		r.bucket[ip] = rate.NewLimiter(r.rate, r.burstSize)
	}

	return r.bucket[ip]
}

// sharedWindow is the fixed window in which burstSize hits are allowed. It
// lets the shared counter admit the same long-run rate and the same burst
// as the local token bucket.
func (r *rateLimiter) sharedWindow() time.Duration {
	window := time.Duration(float64(r.burstSize) / float64(r.rate) * float64(time.Second))
	if window < time.Millisecond {
		return time.Millisecond
	}
	return window
}

func (m *middleware) NewRateLimiter(ctx *fiber.Ctx) error {
	clientIP := ctx.IP()

	if store := m.rateLimitter.store; store != nil {
		allowed, err := store.Allow(ctx.UserContext(), "ratelimit:"+clientIP, m.rateLimitter.burstSize, m.rateLimitter.sharedWindow())
		if err == nil {
			if !allowed {
				return m.tooManyRequests(ctx, clientIP)
			}
			return ctx.Next()
		}
		m.log.Warnf("shared rate limit unavailable, using local limiter: %v", err)
	}

	if !m.rateLimitter.GetLimiterFrom(clientIP).Allow() {
		return m.tooManyRequests(ctx, clientIP)
	}

	return ctx.Next()
}

func (m *middleware) tooManyRequests(ctx *fiber.Ctx, clientIP string) error {
	m.log.Warnf("too many requests for IP %s", clientIP)
	return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"error": ErrTooManyRequests.Error(),
	})
}
