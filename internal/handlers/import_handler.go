package handlers

import (
	"errors"

	"github.com/fieldforcehq/fieldforce-backend/internal/dto"
	"github.com/fieldforcehq/fieldforce-backend/internal/firm"
	"github.com/fieldforcehq/fieldforce-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ImportHandler struct {
	importService *services.ImportService
}

func NewImportHandler(importService *services.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportRoster accepts a multipart CSV upload under the "file" field and
// returns aggregate counts. Row failures are in the summary, not the
// status code.
func (h *ImportHandler) ImportRoster(c *fiber.Ctx) error {
	firmID := firm.GetFirmID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "CSV file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to open uploaded file",
		})
	}
	defer file.Close()

	summary, err := h.importService.ImportRoster(firmID, file)
	if err != nil {
		if errors.Is(err, services.ErrEmptyImport) || errors.Is(err, services.ErrMissingCodeColumn) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Import failed",
		})
	}

	return c.JSON(summary)
}
