package middleware

import (
	"time"

	"github.com/fadilmartias/interview-radar/internal/errs"
	"github.com/fadilmartias/interview-radar/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	if max == 0 {
		max = 50
	}
	if expiration == 0 {
		expiration = 1 * time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		LimitReached: func(c *fiber.Ctx) error {
			return util.ErrorFrom(c, errs.ErrTooManyRequests)
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}

// Debounce lets at most max evaluation POSTs per client through in any
// sliding window (one per 4s by default). Extra submits inside the window get
// a 429. It does not track whether an earlier call is still running.
func Debounce(max int, window time.Duration, render func(c *fiber.Ctx, err error) error) fiber.Handler {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = 4 * time.Second
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() != fiber.MethodPost
		},
		LimitReached: func(c *fiber.Ctx) error {
			return render(c, errs.ErrTooManyRequests)
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
