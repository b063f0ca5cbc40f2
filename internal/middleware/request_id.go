package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID ensures every request carries an identifier, generating one when
// the caller did not supply it, and echoes it back in the response.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		incoming := strings.TrimSpace(c.Get("X-Request-ID"))
		if incoming == "" {
			incoming = uuid.NewString()
		}

		c.Locals("request_id", incoming)
		c.Set("X-Request-ID", incoming)

		return c.Next()
	}
}

// GetRequestID returns the identifier bound to the active request.
func GetRequestID(c *fiber.Ctx) string {
	if value, ok := c.Locals("request_id").(string); ok {
		return value
	}
	return ""
}
