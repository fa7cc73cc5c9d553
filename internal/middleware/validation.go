package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits.
const (
	MaxCreatorIDLen     = 64
	MaxHandleLen        = 100
	MaxStrategyFieldLen = 200
)

var (
	// creatorIDRe matches server-issued UUIDs and the short seed ids.
	creatorIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// handleRe matches YouTube handles without the leading @.
	handleRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateCreatorID checks that a creator id path parameter is well-formed.
func ValidateCreatorID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "id is required"
	}
	if len(id) > MaxCreatorIDLen {
		return "", "id must be at most 64 characters"
	}
	if !creatorIDRe.MatchString(id) {
		return "", "id contains invalid characters"
	}
	return id, ""
}

// ValidateHandle trims the handle and strips one leading @.
func ValidateHandle(handle string) (string, string) {
	handle = strings.TrimSpace(handle)
	handle = strings.TrimPrefix(handle, "@")
	if handle == "" {
		return "", "handle is required"
	}
	if len(handle) > MaxHandleLen {
		return "", "handle must be at most 100 characters"
	}
	if !handleRe.MatchString(handle) {
		return "", "handle contains invalid characters"
	}
	return handle, ""
}

// ValidateStrategyField trims a strategy request field and enforces length.
func ValidateStrategyField(name, value string, required bool) (string, string) {
	value = strings.TrimSpace(value)
	if value == "" && required {
		return "", name + " is required"
	}
	if len(value) > MaxStrategyFieldLen {
		return "", name + " must be at most 200 characters"
	}
	return value, ""
}
