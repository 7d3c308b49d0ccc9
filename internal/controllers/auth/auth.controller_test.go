package authController

import (
	"artistsite/internal/services"
	"artistsite/internal/types"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSecretController() *AuthController {
	sessions := services.NewSessionService(services.NewMemorySessionStore(), "key", time.Hour)
	return NewAuthController(services.NewSecretAuthGate("letmein"), sessions)
}

func TestAuthController_SignInAndOut(t *testing.T) {
	controller := newSecretController()
	ctx := context.Background()

	result, err := controller.SignIn(ctx, services.Credentials{Password: "letmein"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	session, err := controller.CurrentSession(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Session.ID, session.ID)

	require.NoError(t, controller.SignOut(ctx, result.Token))
	_, err = controller.CurrentSession(ctx, result.Token)
	assert.True(t, errors.Is(err, types.ErrAuth))

	assert.NoError(t, controller.SignOut(ctx, ""))
}

func TestAuthController_SignInRejected(t *testing.T) {
	controller := newSecretController()

	result, err := controller.SignIn(context.Background(), services.Credentials{Password: "nope"})
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, types.ErrAuth))
}

func TestAuthController_SignUpUnsupportedInSecretMode(t *testing.T) {
	controller := newSecretController()

	assert.False(t, controller.SupportsSignUp())
	message, err := controller.SignUp(context.Background(), services.Credentials{Email: "a@b.c", Password: "hunter22"})
	assert.Empty(t, message)
	assert.True(t, errors.Is(err, types.ErrSignUpUnsupported))
}

type stubGate struct {
	signUps int
}

func (g *stubGate) Mode() string         { return "session" }
func (g *stubGate) SupportsSignUp() bool { return true }
func (g *stubGate) SignUp(ctx context.Context, credentials services.Credentials) error {
	g.signUps++
	return nil
}
func (g *stubGate) SignIn(ctx context.Context, credentials services.Credentials) (*services.Identity, error) {
	return nil, types.Unauthorized("Invalid login credentials")
}

func TestAuthController_SignUpDoesNotSignIn(t *testing.T) {
	store := services.NewMemorySessionStore()
	gate := &stubGate{}
	controller := NewAuthController(gate, services.NewSessionService(store, "key", time.Hour))

	message, err := controller.SignUp(context.Background(), services.Credentials{Email: "a@b.c", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, SignUpSuccessMessage, message)
	assert.Equal(t, 1, gate.signUps)
	assert.Zero(t, store.Len(), "no session is created")
}
