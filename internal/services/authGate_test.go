package services

import (
	"artistsite/config"
	"artistsite/internal/repositories"
	"artistsite/internal/types"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountAuthGate_SignUpThenSignIn(t *testing.T) {
	repos := repositories.New(newTestDB(t))
	gate := NewAccountAuthGate(repos.AdminUser)
	ctx := context.Background()

	assert.True(t, gate.SupportsSignUp())
	assert.Equal(t, config.AuthModeSession, gate.Mode())

	credentials := Credentials{Email: "Owner@Example.com", Password: "hunter22"}
	require.NoError(t, gate.SignUp(ctx, credentials))

	stored, err := repos.AdminUser.GetByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.Nil(t, stored.LastLoginAt, "sign up does not sign in")

	err = gate.SignUp(ctx, credentials)
	assert.True(t, errors.Is(err, types.ErrAuth))

	identity, err := gate.SignIn(ctx, Credentials{Email: "owner@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, identity.UserID)
	assert.Equal(t, "owner@example.com", identity.Email)

	stored, err = repos.AdminUser.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestAccountAuthGate_SignInFailures(t *testing.T) {
	repos := repositories.New(newTestDB(t))
	gate := NewAccountAuthGate(repos.AdminUser)
	ctx := context.Background()

	require.NoError(t, gate.SignUp(ctx, Credentials{Email: "owner@example.com", Password: "hunter22"}))

	testCases := []Credentials{
		{Email: "owner@example.com", Password: "wrong-pass"},
		{Email: "nobody@example.com", Password: "hunter22"},
	}
	for _, credentials := range testCases {
		identity, err := gate.SignIn(ctx, credentials)
		assert.Nil(t, identity)
		assert.True(t, errors.Is(err, types.ErrAuth))
		assert.Equal(t, "Invalid login credentials", types.UserMessage(err))
	}
}

func TestAccountAuthGate_SignUpValidation(t *testing.T) {
	gate := NewAccountAuthGate(repositories.New(newTestDB(t)).AdminUser)
	ctx := context.Background()

	assert.True(t, errors.Is(gate.SignUp(ctx, Credentials{Email: "not-an-email", Password: "hunter22"}), types.ErrAuth))
	assert.True(t, errors.Is(gate.SignUp(ctx, Credentials{Email: "a@b.c", Password: "123"}), types.ErrAuth))
}

func TestSecretAuthGate(t *testing.T) {
	gate := NewSecretAuthGate("letmein")
	ctx := context.Background()

	assert.False(t, gate.SupportsSignUp())
	assert.True(t, errors.Is(gate.SignUp(ctx, Credentials{Password: "x"}), types.ErrSignUpUnsupported))

	identity, err := gate.SignIn(ctx, Credentials{Password: "letmein"})
	require.NoError(t, err)
	assert.NotNil(t, identity)

	_, err = gate.SignIn(ctx, Credentials{Password: "letmeout"})
	assert.True(t, errors.Is(err, types.ErrAuth))

	_, err = NewSecretAuthGate("").SignIn(ctx, Credentials{Password: ""})
	assert.True(t, errors.Is(err, types.ErrAuth), "an empty secret never matches")
}

func TestNewAuthGate_SelectsByMode(t *testing.T) {
	repos := repositories.New(newTestDB(t))

	gate := NewAuthGate(config.Config{AuthMode: config.AuthModeSecret, AdminSecret: "s"}, repos)
	assert.Equal(t, config.AuthModeSecret, gate.Mode())

	gate = NewAuthGate(config.Config{AuthMode: config.AuthModeSession}, repos)
	assert.Equal(t, config.AuthModeSession, gate.Mode())
}
