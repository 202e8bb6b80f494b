package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nyxlicense/backend/internal/tokens"
)

// AdminRequired guards admin-scoped routes. The bearer token must have
// been minted by a prior admin login and still be inside its window;
// anything else is a 401, distinct from the 400s bad input produces.
func AdminRequired(store tokens.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Missing authorization header",
			})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Invalid authorization header format",
			})
		}

		if !store.IsValid(parts[1]) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			})
		}

		return c.Next()
	}
}
