package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/orbitx-mcn/orbitx-go/internal/middleware"
	"github.com/orbitx-mcn/orbitx-go/internal/service"
)

type AuditHandler struct {
	audit *service.AuditLogger
}

func NewAuditHandler(audit *service.AuditLogger) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List handles GET /api/logs
func (h *AuditHandler) List(c fiber.Ctx) error {
	logs, err := h.audit.List(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load audit logs")
	}
	return c.JSON(logs)
}
