package middleware

import (
	"artistsite/internal/views"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ConfigGate answers every request with the configuration page when the
// relational backend is selected but not configured. The health endpoint
// stays reachable.
func (m *Middleware) ConfigGate() fiber.Handler {
	configured := m.Config.IsStatic() || m.Config.DatabaseConfigured()

	return func(c *fiber.Ctx) error {
		if configured || c.Path() == "/api/health" {
			return c.Next()
		}

		if isAPI(c) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Configuration required",
			})
		}

		return c.Status(fiber.StatusServiceUnavailable).Render(
			views.PageConfigRequired,
			views.ErrorData{Title: "Configuration Required"},
			views.LayoutMain,
		)
	}
}

func isAPI(c *fiber.Ctx) bool {
	return c.Path() == "/api" || strings.HasPrefix(c.Path(), "/api/")
}
