package middleware

import (
	"strconv"
	"time"

	"github.com/fadilmartias/interview-radar/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// Metrics records request count and latency per route pattern. Errors are
// rendered here so the recorded status is the one the client receives.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		labels := []string{c.Method(), path, strconv.Itoa(c.Response().StatusCode())}
		m.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		m.Requests.WithLabelValues(labels...).Inc()
		return nil
	}
}
