package middleware

import (
	"github.com/fieldforcehq/fieldforce-backend/internal/dto"
	"github.com/fieldforcehq/fieldforce-backend/internal/firm"
	"github.com/gofiber/fiber/v2"
)

// FeatureRequired gates a route on a per-firm feature flag from the
// registry. Firms without the flag get a 403.
func FeatureRequired(registry *firm.Registry, feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !registry.HasFeature(firm.GetFirmID(c), feature) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Feature not enabled for this firm: " + feature,
			})
		}
		return c.Next()
	}
}
