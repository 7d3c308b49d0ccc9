package handlers

import (
	"artistsite/internal/app"
	adminController "artistsite/internal/controllers/admin"
	authController "artistsite/internal/controllers/auth"
	siteController "artistsite/internal/controllers/site"
	"artistsite/internal/types"
	"artistsite/internal/views"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

const ExportFileName = "content.json"

// SiteHandler serves the server-rendered page and the form posts made from
// it. Each request resolves its view mode once, from the admin signal and
// the session, and renders from the held content snapshot.
type SiteHandler struct {
	Handler
	siteController  siteController.SiteControllerInterface
	authController  authController.AuthControllerInterface
	adminController adminController.AdminControllerInterface
}

func NewSiteHandler(app app.App, router fiber.Router) *SiteHandler {
	log := logger.New("handlers").File("site_handler")
	return &SiteHandler{
		siteController:  app.Controllers.Site,
		authController:  app.Controllers.Auth,
		adminController: app.Controllers.Admin,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SiteHandler) Register() {
	h.router.Get("/", h.index)
	h.router.Get("/admin", h.admin)

	admin := h.router.Group("/admin")
	admin.Post("/login", h.login)
	admin.Post("/logout", h.logout)

	protected := h.middleware.RequireAdminPage()
	admin.Post("/shows", protected, h.createShow)
	admin.Post("/shows/:id", protected, h.updateShow)
	admin.Post("/shows/:id/delete", protected, h.deleteShow)
	admin.Post("/releases", protected, h.createRelease)
	admin.Post("/releases/:id", protected, h.updateRelease)
	admin.Post("/releases/:id/delete", protected, h.deleteRelease)
	admin.Get("/export", protected, h.export)
}

func (h *SiteHandler) index(c *fiber.Ctx) error {
	return h.render(c, c.Query("view"), fiber.StatusOK, nil, nil)
}

func (h *SiteHandler) admin(c *fiber.Ctx) error {
	return h.render(c, types.AdminSignal, fiber.StatusOK, nil, nil)
}

// render draws the page for signal. login replaces the default login form;
// edit adjusts the admin panel before it is drawn.
func (h *SiteHandler) render(
	c *fiber.Ctx,
	signal string,
	status int,
	login *views.LoginForm,
	edit func(panel *adminController.Panel),
) error {
	log := h.log.Function("render").TraceFromContext(c.UserContext())
	ctx := c.UserContext()

	mode := types.ResolveViewMode(signal, h.middleware.IsAuthenticated(c))

	page, err := h.siteController.GetPage(ctx, mode)
	if err != nil {
		log.Er("failed to build page", err, "mode", mode)
		return h.renderError(c, err)
	}

	data := views.NewPageData(page)

	switch mode {
	case types.ViewAdminLogin:
		if login == nil {
			login = h.loginForm(c.Query("tab") == "signup")
		}
		data.Login = login
	case types.ViewAdminPanel:
		state := adminController.ParsePanelState(c.Query("modal"), c.Query("id"))
		panel, err := h.adminController.Panel(ctx, state)
		if err != nil {
			log.Er("failed to build admin panel", err)
			return h.renderError(c, err)
		}
		if edit != nil {
			edit(panel)
		}
		data.Panel = panel
	}

	return c.Status(status).Render(views.PageIndex, data, views.LayoutMain)
}

// renderError shows the whole-page error state. Nothing from the snapshot
// is rendered alongside it.
func (h *SiteHandler) renderError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).Render(
		views.PageError,
		views.NewErrorData(types.UserMessage(err)),
		views.LayoutMain,
	)
}

func (h *SiteHandler) loginForm(signUp bool) *views.LoginForm {
	supportsSignUp := h.authController.SupportsSignUp()
	return &views.LoginForm{
		SignUp:         signUp && supportsSignUp,
		SupportsSignUp: supportsSignUp,
	}
}

func (h *SiteHandler) backToPanel(c *fiber.Ctx) error {
	return c.Redirect("/admin", fiber.StatusSeeOther)
}
