package authController

import (
	"artistsite/internal/services"
	"context"

	logger "github.com/Bparsons0904/goLogger"
)

const SignUpSuccessMessage = "Sign up successful! You can now sign in using the 'Sign In' tab."

type AuthControllerInterface interface {
	Mode() string
	SupportsSignUp() bool
	SignUp(ctx context.Context, credentials services.Credentials) (string, error)
	SignIn(ctx context.Context, credentials services.Credentials) (*SignInResult, error)
	SignOut(ctx context.Context, token string) error
	CurrentSession(ctx context.Context, token string) (*services.Session, error)
}

type AuthController struct {
	gate     services.AuthGate
	sessions *services.SessionService
	log      logger.Logger
}

type SignInResult struct {
	Token   string            `json:"token"`
	Session *services.Session `json:"session"`
}

type SessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	Mode          string            `json:"mode"`
	Session       *services.Session `json:"session,omitempty"`
}

func New(service services.Service) AuthControllerInterface {
	return NewAuthController(service.Auth, service.Sessions)
}

func NewAuthController(gate services.AuthGate, sessions *services.SessionService) *AuthController {
	return &AuthController{
		gate:     gate,
		sessions: sessions,
		log:      logger.New("authController"),
	}
}

func (c *AuthController) Mode() string {
	return c.gate.Mode()
}

func (c *AuthController) SupportsSignUp() bool {
	return c.gate.SupportsSignUp()
}

// SignUp registers the account and returns the message shown to the user.
// The caller stays signed out.
func (c *AuthController) SignUp(ctx context.Context, credentials services.Credentials) (string, error) {
	log := c.log.Function("SignUp").TraceFromContext(ctx)

	if err := c.gate.SignUp(ctx, credentials); err != nil {
		log.Warn("sign up rejected", "error", err)
		return "", err
	}

	return SignUpSuccessMessage, nil
}

func (c *AuthController) SignIn(
	ctx context.Context,
	credentials services.Credentials,
) (*SignInResult, error) {
	log := c.log.Function("SignIn").TraceFromContext(ctx)

	identity, err := c.gate.SignIn(ctx, credentials)
	if err != nil {
		log.Warn("sign in rejected", "mode", c.gate.Mode(), "error", err)
		return nil, err
	}

	token, session, err := c.sessions.Create(ctx, *identity)
	if err != nil {
		return nil, log.Err("failed to create session", err)
	}

	log.Info("Admin signed in", "sessionID", session.ID, "mode", c.gate.Mode())
	return &SignInResult{Token: token, Session: session}, nil
}

func (c *AuthController) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return c.sessions.Revoke(ctx, token)
}

// CurrentSession resolves token to a live session. It returns an error
// wrapping types.ErrAuth for anonymous callers.
func (c *AuthController) CurrentSession(ctx context.Context, token string) (*services.Session, error) {
	return c.sessions.Validate(ctx, token)
}
