package handlers

import (
	"artistsite/internal/handlers/middleware"
	"artistsite/internal/services"
	"artistsite/internal/types"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	actionSignIn = "signin"
	actionSignUp = "signup"
)

// login handles both tabs of the login dialog. Sign-up never signs the
// caller in; it re-renders the dialog with the outcome.
func (h *SiteHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login").TraceFromContext(c.UserContext())

	credentials := services.Credentials{
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}

	if c.FormValue("action") == actionSignUp {
		form := h.loginForm(true)
		form.Email = credentials.Email

		message, err := h.authController.SignUp(c.UserContext(), credentials)
		if err != nil {
			form.Error = types.UserMessage(err)
			return h.render(c, types.AdminSignal, statusFor(err), form, nil)
		}

		form.Message = message
		return h.render(c, types.AdminSignal, fiber.StatusOK, form, nil)
	}

	result, err := h.authController.SignIn(c.UserContext(), credentials)
	if err != nil {
		form := h.loginForm(false)
		form.Email = credentials.Email
		form.Error = loginError(err)
		return h.render(c, types.AdminSignal, statusFor(err), form, nil)
	}

	log.Info("Admin signed in from login form", "sessionID", result.Session.ID)
	c.Cookie(h.middleware.SessionCookie(result.Token))
	return h.backToPanel(c)
}

func (h *SiteHandler) logout(c *fiber.Ctx) error {
	if err := h.authController.SignOut(c.UserContext(), middleware.GetToken(c)); err != nil {
		h.log.Function("logout").Er("failed to revoke session", err)
	}

	c.ClearCookie(services.SESSION_COOKIE_NAME)
	return h.backToPanel(c)
}

func loginError(err error) string {
	var userErr *types.UserError
	if errors.As(err, &userErr) {
		return userErr.Message
	}
	return "Sign in failed. Please try again."
}
