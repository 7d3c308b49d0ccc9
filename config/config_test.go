package config

import (
	"testing"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		ServerPort:      8280,
		ContentBackend:  BackendRemote,
		DatabaseDriver:  DriverPostgres,
		AuthMode:        AuthModeSession,
		SessionTTLHours: 12,
	}
}

func TestValidateConfig(t *testing.T) {
	log := logger.New("test")

	testCases := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{name: "valid remote config", mutate: func(c *Config) {}},
		{name: "invalid port", mutate: func(c *Config) { c.ServerPort = 0 }, wantError: true},
		{name: "unknown backend", mutate: func(c *Config) { c.ContentBackend = "ftp" }, wantError: true},
		{name: "unknown driver", mutate: func(c *Config) { c.DatabaseDriver = "oracle" }, wantError: true},
		{name: "unknown auth mode", mutate: func(c *Config) { c.AuthMode = "oauth" }, wantError: true},
		{
			name:      "secret mode without secret",
			mutate:    func(c *Config) { c.AuthMode = AuthModeSecret },
			wantError: true,
		},
		{
			name: "secret mode with secret",
			mutate: func(c *Config) {
				c.AuthMode = AuthModeSecret
				c.AdminSecret = "letmein"
			},
		},
		{name: "zero session ttl", mutate: func(c *Config) { c.SessionTTLHours = 0 }, wantError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := validConfig()
			tc.mutate(&config)

			err := validateConfig(&config, log)
			if tc.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateConfig_StaticForcesSecretMode(t *testing.T) {
	config := validConfig()
	config.ContentBackend = " Static "
	config.AdminSecret = "letmein"

	require.NoError(t, validateConfig(&config, logger.New("test")))
	assert.Equal(t, BackendStatic, config.ContentBackend)
	assert.Equal(t, AuthModeSecret, config.AuthMode)
	assert.True(t, config.IsStatic())
}

func TestValidateConfig_GeneratesSigningKey(t *testing.T) {
	config := validConfig()

	require.NoError(t, validateConfig(&config, logger.New("test")))
	assert.NotEmpty(t, config.SessionSigningKey)
	assert.Equal(t, config, GetConfig())
}

func TestDatabaseConfigured(t *testing.T) {
	config := validConfig()
	assert.False(t, config.DatabaseConfigured())

	config.DatabaseHost = "localhost"
	config.DatabaseName = "artist"
	config.DatabaseUser = "artist"
	assert.True(t, config.DatabaseConfigured())

	config = validConfig()
	config.DatabaseDriver = DriverSQLite
	assert.False(t, config.DatabaseConfigured())
	config.DatabasePath = "artist.db"
	assert.True(t, config.DatabaseConfigured())
}
