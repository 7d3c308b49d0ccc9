package handlers

import (
	"artistsite/internal/types"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps an error category to the HTTP status it is reported with.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, types.ErrAuth):
		return fiber.StatusUnauthorized
	case errors.Is(err, types.ErrSignUpUnsupported):
		return fiber.StatusForbidden
	case errors.Is(err, types.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, types.ErrLoad), errors.Is(err, types.ErrNotConfigured):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": types.UserMessage(err),
	})
}

// paramID reads a positive :id route parameter.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, types.Invalid("Invalid id %q.", c.Params("id"))
	}
	return id, nil
}
