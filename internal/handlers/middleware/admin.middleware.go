package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireAdmin guards JSON endpoints.
func (m *Middleware) RequireAdmin() fiber.Handler {
	log := m.log.Function("RequireAdmin")

	return func(c *fiber.Ctx) error {
		if GetSession(c) == nil {
			log.Info("admin session required", "path", c.Path(), "traceID", GetTraceID(c))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}
		return c.Next()
	}
}

// RequireAdminPage guards form posts from the admin panel. Anonymous callers
// are sent back to the login form.
func (m *Middleware) RequireAdminPage() fiber.Handler {
	log := m.log.Function("RequireAdminPage")

	return func(c *fiber.Ctx) error {
		if GetSession(c) == nil {
			log.Info("admin session required", "path", c.Path(), "traceID", GetTraceID(c))
			return c.Redirect("/admin", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
