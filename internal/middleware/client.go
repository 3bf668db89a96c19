package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const ClientIDKey = "clientID"

// EnsureClientID reads the client id from the X-Client-ID header or the
// clientId query parameter and stores it in locals.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(ClientIDKey) != nil {
			return c.Next()
		}

		clientID := c.Get("X-Client-ID")
		if clientID == "" {
			clientID = c.Query("clientId")
		}
		if clientID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "client ID is required",
			})
		}

		c.Locals(ClientIDKey, clientID)
		return c.Next()
	}
}
