package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/orbitx-mcn/orbitx-go/internal/middleware"
	"github.com/orbitx-mcn/orbitx-go/internal/model"
	"github.com/orbitx-mcn/orbitx-go/internal/service"
)

type CreatorHandler struct {
	svc *service.CreatorService
}

func NewCreatorHandler(svc *service.CreatorService) *CreatorHandler {
	return &CreatorHandler{svc: svc}
}

// List handles GET /api/creators
func (h *CreatorHandler) List(c fiber.Ctx) error {
	creators, err := h.svc.List(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list creators")
	}
	return c.JSON(creators)
}

// Get handles GET /api/creators/:id
func (h *CreatorHandler) Get(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateCreatorID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	creator, err := h.svc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCreatorNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Creator not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load creator")
	}
	return c.JSON(creator)
}

// Create handles POST /api/creators
func (h *CreatorHandler) Create(c fiber.Ctx) error {
	var patch model.CreatorPatch
	if err := c.Bind().JSON(&patch); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
	}

	creator, err := h.svc.Create(c.Context(), patch)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save creator")
	}
	return c.Status(fiber.StatusCreated).JSON(creator)
}

// Update handles PUT /api/creators/:id
// An unknown id is acknowledged with success and changes nothing. Ids that
// could never have been issued count as unknown. An empty body is an empty
// patch.
func (h *CreatorHandler) Update(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateCreatorID(c.Params("id"))
	if errMsg != "" {
		return c.JSON(model.SuccessResponse{Success: true})
	}

	var patch model.CreatorPatch
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&patch); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
		}
	}

	if _, err := h.svc.Update(c.Context(), id, patch); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update creator")
	}
	return c.JSON(model.SuccessResponse{Success: true})
}

// Delete handles DELETE /api/creators/:id
// Deleting an unknown or malformed id is acknowledged with success.
func (h *CreatorHandler) Delete(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateCreatorID(c.Params("id"))
	if errMsg != "" {
		return c.JSON(model.SuccessResponse{Success: true})
	}

	if _, err := h.svc.Delete(c.Context(), id); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete creator")
	}
	return c.JSON(model.SuccessResponse{Success: true})
}

// Sync handles POST /api/creators/:id/sync
func (h *CreatorHandler) Sync(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateCreatorID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.SyncRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
	}
	handle, errMsg := middleware.ValidateHandle(req.Handle)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	creator, _, err := h.svc.Sync(c.Context(), id, handle)
	if err != nil {
		if errors.Is(err, service.ErrCreatorNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Creator not found")
		}
		if errors.Is(err, service.ErrChannelNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "CHANNEL_NOT_FOUND", "No channel matches that handle")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sync creator")
	}
	return c.JSON(creator)
}
