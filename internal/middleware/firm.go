package middleware

import (
	"strings"

	"github.com/fieldforcehq/fieldforce-backend/internal/dto"
	"github.com/fieldforcehq/fieldforce-backend/internal/firm"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Paths that don't require firm identification.
var firmSkipPaths = []string{
	"/api/health",
}

// FirmMiddleware resolves the firm from JWT claims, the X-Firm-ID header,
// or a query param, and rejects unknown firms.
func FirmMiddleware(registry *firm.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		for _, skip := range firmSkipPaths {
			if strings.HasPrefix(path, skip) {
				return c.Next()
			}
		}

		// 1. Try JWT claim (already authenticated)
		if token, ok := c.Locals("user").(*jwt.Token); ok {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if firmID, ok := claims["firm_id"].(string); ok && firmID != "" {
					c.Locals("firm_id", firmID)
					return c.Next()
				}
			}
		}

		// 2. Try X-Firm-ID header
		firmID := c.Get("X-Firm-ID")
		if firmID != "" {
			if !registry.Exists(firmID) {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error:   true,
					Message: "Invalid X-Firm-ID: " + firmID,
				})
			}
			c.Locals("firm_id", firmID)
			return c.Next()
		}

		// 3. Try query param (backward compat)
		firmID = c.Query("firm_id")
		if firmID != "" {
			if !registry.Exists(firmID) {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error:   true,
					Message: "Invalid firm_id: " + firmID,
				})
			}
			c.Locals("firm_id", firmID)
			return c.Next()
		}

		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "X-Firm-ID header is required",
		})
	}
}
