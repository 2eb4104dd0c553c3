package handlers

import (
	"errors"
	"strconv"

	"github.com/fieldforcehq/fieldforce-backend/internal/dto"
	"github.com/fieldforcehq/fieldforce-backend/internal/firm"
	"github.com/fieldforcehq/fieldforce-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ActorCodeHandler struct {
	actorCodeService *services.ActorCodeService
	bindingService   *services.BindingService
}

func NewActorCodeHandler(actorCodeService *services.ActorCodeService, bindingService *services.BindingService) *ActorCodeHandler {
	return &ActorCodeHandler{actorCodeService: actorCodeService, bindingService: bindingService}
}

func (h *ActorCodeHandler) Create(c *fiber.Ctx) error {
	firmID := firm.GetFirmID(c)

	var req dto.CreateActorCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	ac, binding, err := h.actorCodeService.Create(firmID, &req)
	if err != nil {
		if errors.Is(err, services.ErrActorCodeExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrCodeRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create actor code",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"actor_code": ac,
		"binding":    binding,
	})
}

func (h *ActorCodeHandler) Update(c *fiber.Ctx) error {
	firmID := firm.GetFirmID(c)
	code := c.Params("code")

	var req dto.UpdateActorCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	ac, binding, err := h.actorCodeService.Edit(firmID, code, &req)
	if err != nil {
		if errors.Is(err, services.ErrActorCodeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrActorCodeExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update actor code",
		})
	}

	return c.JSON(fiber.Map{
		"actor_code": ac,
		"binding":    binding,
	})
}

func (h *ActorCodeHandler) Delete(c *fiber.Ctx) error {
	firmID := firm.GetFirmID(c)
	code := c.Params("code")

	binding, err := h.actorCodeService.Delete(firmID, code)
	if err != nil {
		if errors.Is(err, services.ErrActorCodeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete actor code",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Actor code deleted",
		"binding": binding,
	})
}

func (h *ActorCodeHandler) Get(c *fiber.Ctx) error {
	firmID := firm.GetFirmID(c)

	ac, err := h.actorCodeService.Get(firmID, c.Params("code"))
	if err != nil {
		if errors.Is(err, services.ErrActorCodeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch actor code",
		})
	}

	return c.JSON(ac)
}

func (h *ActorCodeHandler) List(c *fiber.Ctx) error {
	firmID := firm.GetFirmID(c)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	if limit > 100 {
		limit = 100
	}

	codes, total, err := h.actorCodeService.List(firmID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list actor codes",
		})
	}

	return c.JSON(fiber.Map{
		"actor_codes": codes,
		"total":       total,
		"limit":       limit,
		"offset":      offset,
	})
}

// Reconcile runs the read-only binding audit for the caller's firm.
func (h *ActorCodeHandler) Reconcile(c *fiber.Ctx) error {
	firmID := firm.GetFirmID(c)

	report, err := h.bindingService.Reconcile(firmID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to reconcile bindings",
		})
	}

	return c.JSON(fiber.Map{
		"clean":  report.Clean(),
		"report": report,
	})
}
