package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/orbitx-mcn/orbitx-go/internal/middleware"
	"github.com/orbitx-mcn/orbitx-go/internal/model"
	"github.com/orbitx-mcn/orbitx-go/internal/service"
)

type StrategyHandler struct {
	gen service.StrategyGenerator
}

func NewStrategyHandler(gen service.StrategyGenerator) *StrategyHandler {
	return &StrategyHandler{gen: gen}
}

// Generate handles POST /api/strategy
func (h *StrategyHandler) Generate(c fiber.Ctx) error {
	var req model.StrategyRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
	}

	var errMsg string
	if req.Niche, errMsg = middleware.ValidateStrategyField("niche", req.Niche, true); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	if req.Topic, errMsg = middleware.ValidateStrategyField("topic", req.Topic, true); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	if req.ChannelName, errMsg = middleware.ValidateStrategyField("channelName", req.ChannelName, false); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	strategy, err := h.gen.Generate(c.Context(), req)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "GENERATION_FAILED", "Failed to generate strategy")
	}
	return c.JSON(strategy)
}
