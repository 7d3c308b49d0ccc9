package handlers

import (
	"artistsite/internal/app"
	siteController "artistsite/internal/controllers/site"
	"artistsite/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ContentHandler struct {
	Handler
	siteController siteController.SiteControllerInterface
}

func NewContentHandler(app app.App, router fiber.Router) *ContentHandler {
	log := logger.New("handlers").File("content_handler")
	return &ContentHandler{
		siteController: app.Controllers.Site,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ContentHandler) Register() {
	h.router.Get("/content", h.getContent)
	h.router.Get("/view", h.getView)
}

func (h *ContentHandler) getContent(c *fiber.Ctx) error {
	content, err := h.siteController.GetContent(c.UserContext())
	if err != nil {
		h.log.Function("getContent").Er("failed to get content", err)
		return errorJSON(c, err)
	}

	return c.JSON(content)
}

// getView reports which view mode a page would render in for this caller
// and admin signal.
func (h *ContentHandler) getView(c *fiber.Ctx) error {
	authenticated := h.middleware.IsAuthenticated(c)
	return c.JSON(fiber.Map{
		"mode":          types.ResolveViewMode(c.Query("view"), authenticated),
		"authenticated": authenticated,
	})
}
