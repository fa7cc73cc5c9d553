package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/orbitx-mcn/orbitx-go/internal/service"
)

type AnalyticsHandler struct {
	svc *service.AnalyticsService
}

func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// List handles GET /api/analytics
func (h *AnalyticsHandler) List(c fiber.Ctx) error {
	return c.JSON(h.svc.List())
}
