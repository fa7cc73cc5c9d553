package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/orbitx-mcn/orbitx-go/internal/middleware"
	"github.com/orbitx-mcn/orbitx-go/internal/service"
)

type LookupHandler struct {
	lookup service.ChannelLookup
}

func NewLookupHandler(lookup service.ChannelLookup) *LookupHandler {
	return &LookupHandler{lookup: lookup}
}

// Lookup handles GET /api/channels/lookup?handle=@name
func (h *LookupHandler) Lookup(c fiber.Ctx) error {
	handle, errMsg := middleware.ValidateHandle(fiber.Query[string](c, "handle"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	info, err := h.lookup.Lookup(c.Context(), handle)
	if errors.Is(err, service.ErrChannelNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "CHANNEL_NOT_FOUND", "No channel matches that handle")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "LOOKUP_FAILED", "Failed to look up channel")
	}
	return c.JSON(info)
}
