package middleware

import (
	"time"

	"simplepay/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records the status and latency of every request. Requests are
// labelled by route pattern so ids in paths do not explode cardinality.
func Metrics(collector metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Run the error handler here so the recorded status is the one
		// the client receives.
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		collector.RecordHTTPRequest(c.Method(), route, status, time.Since(start))
		return nil
	}
}
