package handlers

import (
	"artistsite/internal/app"
	adminController "artistsite/internal/controllers/admin"
	"artistsite/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the JSON editing API. Every route needs a session.
type AdminHandler struct {
	Handler
	adminController adminController.AdminControllerInterface
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		adminController: app.Controllers.Admin,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	shows := h.router.Group("/shows", h.middleware.RequireAdmin())
	shows.Post("/", h.createShow)
	shows.Put("/:id", h.updateShow)
	shows.Delete("/:id", h.deleteShow)

	releases := h.router.Group("/releases", h.middleware.RequireAdmin())
	releases.Post("/", h.createRelease)
	releases.Put("/:id", h.updateRelease)
	releases.Delete("/:id", h.deleteRelease)

	h.router.Get("/export", h.middleware.RequireAdmin(), h.export)
}

func (h *AdminHandler) createShow(c *fiber.Ctx) error {
	return h.saveShow(c, 0, fiber.StatusCreated)
}

func (h *AdminHandler) updateShow(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return errorJSON(c, err)
	}
	return h.saveShow(c, id, fiber.StatusOK)
}

func (h *AdminHandler) saveShow(c *fiber.Ctx, id int64, status int) error {
	log := h.log.Function("saveShow")

	var input services.ShowInput
	if err := c.BodyParser(&input); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	show, err := h.adminController.SaveShow(c.UserContext(), id, input)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(status).JSON(show)
}

func (h *AdminHandler) deleteShow(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return errorJSON(c, err)
	}

	if err := h.adminController.DeleteShow(c.UserContext(), id); err != nil {
		return errorJSON(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) createRelease(c *fiber.Ctx) error {
	return h.saveRelease(c, 0, fiber.StatusCreated)
}

func (h *AdminHandler) updateRelease(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return errorJSON(c, err)
	}
	return h.saveRelease(c, id, fiber.StatusOK)
}

// saveRelease reports a failed link step with the release that was stored,
// since its scalar fields are not rolled back.
func (h *AdminHandler) saveRelease(c *fiber.Ctx, id int64, status int) error {
	log := h.log.Function("saveRelease")

	var input services.ReleaseInput
	if err := c.BodyParser(&input); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	release, err := h.adminController.SaveRelease(c.UserContext(), id, input)
	if err != nil {
		if release == nil {
			return errorJSON(c, err)
		}
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error":   "Release saved but its links were not updated",
			"release": release,
		})
	}

	return c.Status(status).JSON(release)
}

func (h *AdminHandler) deleteRelease(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return errorJSON(c, err)
	}

	if err := h.adminController.DeleteRelease(c.UserContext(), id); err != nil {
		return errorJSON(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) export(c *fiber.Ctx) error {
	file, err := h.adminController.Export(c.UserContext())
	if err != nil {
		return errorJSON(c, err)
	}

	c.Attachment(ExportFileName)
	return c.JSON(file)
}
