package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/orbitx-mcn/orbitx-go/internal/middleware"
	"github.com/orbitx-mcn/orbitx-go/internal/model"
	"github.com/orbitx-mcn/orbitx-go/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /api/auth/login
// Rejections use the dashboard's {success,message} shape, not the error envelope.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
	}

	resp, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(model.LoginFailure{
			Success: false,
			Message: "Invalid credentials",
		})
	}
	return c.JSON(resp)
}
