package handlers

import (
	"artistsite/internal/app"
	authController "artistsite/internal/controllers/auth"
	"artistsite/internal/handlers/middleware"
	"artistsite/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authController: app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Get("/session", h.getSession)
	auth.Post("/signup", h.signUp)
	auth.Post("/signin", h.signIn)
	auth.Post("/signout", h.signOut)
}

func (h *AuthHandler) getSession(c *fiber.Ctx) error {
	return c.JSON(authController.SessionResponse{
		Authenticated: h.middleware.IsAuthenticated(c),
		Mode:          h.authController.Mode(),
		Session:       middleware.GetSession(c),
	})
}

func (h *AuthHandler) signUp(c *fiber.Ctx) error {
	var credentials services.Credentials
	if err := c.BodyParser(&credentials); err != nil {
		h.log.Function("signUp").Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	message, err := h.authController.SignUp(c.UserContext(), credentials)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
	})
}

func (h *AuthHandler) signIn(c *fiber.Ctx) error {
	var credentials services.Credentials
	if err := c.BodyParser(&credentials); err != nil {
		h.log.Function("signIn").Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.authController.SignIn(c.UserContext(), credentials)
	if err != nil {
		return errorJSON(c, err)
	}

	c.Cookie(h.middleware.SessionCookie(result.Token))
	return c.JSON(result)
}

func (h *AuthHandler) signOut(c *fiber.Ctx) error {
	if err := h.authController.SignOut(c.UserContext(), middleware.GetToken(c)); err != nil {
		h.log.Function("signOut").Er("failed to revoke session", err)
		return errorJSON(c, err)
	}

	c.ClearCookie(services.SESSION_COOKIE_NAME)
	return c.SendStatus(fiber.StatusNoContent)
}
