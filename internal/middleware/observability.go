package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studioclass/review-api/internal/observability"
)

// Observability records request counters and latency histograms and emits a
// structured access log line per request.
func Observability(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = c.Path()
		}
		status := c.Response().StatusCode()
		elapsed := time.Since(start)

		observability.HTTPRequests().WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		observability.HTTPLatency().WithLabelValues(c.Method(), route).Observe(elapsed.Seconds())

		logger.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", elapsed).
			Str("request_id", GetRequestID(c)).
			Msg("request handled")

		return err
	}
}
