package middleware

import (
	"artistsite/internal/services"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	SessionLocalKey = "session"
	TokenLocalKey   = "sessionToken"
)

// Session resolves the caller's session from the session cookie or a Bearer
// token. Anonymous requests pass through untouched; a cookie that no longer
// maps to a live session is cleared.
func (m *Middleware) Session() fiber.Handler {
	log := m.log.Function("Session")

	return func(c *fiber.Ctx) error {
		token, fromCookie := requestToken(c)
		if token == "" {
			return c.Next()
		}

		session, err := m.auth.CurrentSession(c.UserContext(), token)
		if err != nil {
			log.Debug("ignoring invalid session token", "error", err, "cookie", fromCookie)
			if fromCookie {
				c.ClearCookie(services.SESSION_COOKIE_NAME)
			}
			return c.Next()
		}

		c.Locals(SessionLocalKey, session)
		c.Locals(TokenLocalKey, token)
		return c.Next()
	}
}

func requestToken(c *fiber.Ctx) (string, bool) {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token), false
		}
	}
	return c.Cookies(services.SESSION_COOKIE_NAME), true
}

func GetSession(c *fiber.Ctx) *services.Session {
	session, ok := c.Locals(SessionLocalKey).(*services.Session)
	if !ok {
		return nil
	}
	return session
}

func GetToken(c *fiber.Ctx) string {
	token, _ := c.Locals(TokenLocalKey).(string)
	return token
}

// SessionCookie is scoped to the browser session: no expiry is set.
func (m *Middleware) SessionCookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:        services.SESSION_COOKIE_NAME,
		Value:       token,
		Path:        "/",
		HTTPOnly:    true,
		Secure:      m.Config.Environment == "production",
		SameSite:    fiber.CookieSameSiteLaxMode,
		SessionOnly: true,
	}
}

func (m *Middleware) IsAuthenticated(c *fiber.Ctx) bool {
	return GetSession(c) != nil
}
