package handlers

import (
	"time"

	"github.com/fieldforcehq/fieldforce-backend/internal/database"
	"github.com/fieldforcehq/fieldforce-backend/internal/dto"
	"github.com/fieldforcehq/fieldforce-backend/internal/firm"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	registry *firm.Registry
}

func NewHealthHandler(registry *firm.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		FirmCount: len(h.registry.All()),
	})
}
