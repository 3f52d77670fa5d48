package middleware

import (
	"StyleAdvisor/pkg/redis"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	NewLoggingMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type middleware struct {
	rateLimitter        *rateLimiter
	requestIDMiddleware fiber.Handler
	log                 *logrus.Logger
}

// New wires the shared middlewares. store may be nil, in which case rate
// limits are kept per process.
func New(logger *logrus.Logger, limits RateLimitConfig, store redis.IRedis) Middleware {
	if limits.RequestsPerSecond <= 0 {
		limits.RequestsPerSecond = 5
	}
	if limits.Burst <= 0 {
		limits.Burst = 10
	}

	return &middleware{
		rateLimitter:        newRateLimiter(rate.Limit(limits.RequestsPerSecond), limits.Burst, store),
		requestIDMiddleware: NewRequestIDMiddleware(),
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}

func (m *middleware) NewLoggingMiddleware() fiber.Handler {
	return LoggerConfig()
}
