package services

import (
	"artistsite/config"
	"artistsite/internal/models"
	"artistsite/internal/repositories"
	"artistsite/internal/types"
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// Identity is who a successful sign-in vouches for. The secret gate has no
// accounts, so its identity carries only the submitted email, if any.
type Identity struct {
	UserID int64  `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthGate checks credentials for the admin area. Session bookkeeping lives
// in SessionService.
type AuthGate interface {
	Mode() string
	SupportsSignUp() bool
	// SignUp registers an account. It never signs the caller in.
	SignUp(ctx context.Context, credentials Credentials) error
	SignIn(ctx context.Context, credentials Credentials) (*Identity, error)
}

func NewAuthGate(cfg config.Config, repos repositories.Repository) AuthGate {
	if cfg.AuthMode == config.AuthModeSecret {
		return NewSecretAuthGate(cfg.AdminSecret)
	}
	return NewAccountAuthGate(repos.AdminUser)
}

// AccountAuthGate signs admins in against stored accounts with bcrypt
// password hashes.
type AccountAuthGate struct {
	users repositories.AdminUserRepository
	now   func() time.Time
	log   logger.Logger
}

func NewAccountAuthGate(users repositories.AdminUserRepository) *AccountAuthGate {
	return &AccountAuthGate{
		users: users,
		now:   time.Now,
		log:   logger.New("accountAuthGate"),
	}
}

func (g *AccountAuthGate) Mode() string {
	return config.AuthModeSession
}

func (g *AccountAuthGate) SupportsSignUp() bool {
	return true
}

func validateCredentials(credentials Credentials) (Credentials, error) {
	credentials.Email = models.NormalizeEmail(credentials.Email)
	if credentials.Email == "" || !strings.Contains(credentials.Email, "@") {
		return credentials, types.Unauthorized("A valid email is required.")
	}
	if len(credentials.Password) < minPasswordLength {
		return credentials, types.Unauthorized(
			fmt.Sprintf("Password should be at least %d characters.", minPasswordLength),
		)
	}
	return credentials, nil
}

func (g *AccountAuthGate) SignUp(ctx context.Context, credentials Credentials) error {
	log := g.log.Function("SignUp")

	credentials, err := validateCredentials(credentials)
	if err != nil {
		return err
	}

	existing, err := g.users.GetByEmail(ctx, credentials.Email)
	if err != nil {
		return log.Err("failed to look up admin user", err)
	}
	if existing != nil {
		return types.Unauthorized("User already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), bcrypt.DefaultCost)
	if err != nil {
		return log.Err("failed to hash password", err)
	}

	user := &models.AdminUser{Email: credentials.Email, PasswordHash: string(hash)}
	if err := g.users.Create(ctx, user); err != nil {
		return log.Err("failed to create admin user", err)
	}

	log.Info("Admin user registered", "userID", user.ID)
	return nil
}

func (g *AccountAuthGate) SignIn(ctx context.Context, credentials Credentials) (*Identity, error) {
	log := g.log.Function("SignIn")

	email := models.NormalizeEmail(credentials.Email)
	user, err := g.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, log.Err("failed to look up admin user", err)
	}

	invalid := types.Unauthorized("Invalid login credentials")
	if user == nil {
		return nil, invalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		return nil, invalid
	}

	if err := g.users.TouchLastLogin(ctx, user.ID, g.now().UTC()); err != nil {
		log.Warn("failed to record last login", "userID", user.ID, "error", err)
	}

	return &Identity{UserID: user.ID, Email: user.Email}, nil
}

// SecretAuthGate compares the submitted password with one shared secret
// held in configuration. It has no accounts and no lockout, so it only
// keeps casual visitors out of the editor.
type SecretAuthGate struct {
	secret []byte
}

func NewSecretAuthGate(secret string) *SecretAuthGate {
	return &SecretAuthGate{secret: []byte(secret)}
}

func (g *SecretAuthGate) Mode() string {
	return config.AuthModeSecret
}

func (g *SecretAuthGate) SupportsSignUp() bool {
	return false
}

func (g *SecretAuthGate) SignUp(ctx context.Context, credentials Credentials) error {
	return types.ErrSignUpUnsupported
}

func (g *SecretAuthGate) SignIn(ctx context.Context, credentials Credentials) (*Identity, error) {
	if len(g.secret) == 0 ||
		subtle.ConstantTimeCompare([]byte(credentials.Password), g.secret) != 1 {
		return nil, types.Unauthorized("Invalid password")
	}

	return &Identity{Email: models.NormalizeEmail(credentials.Email)}, nil
}
