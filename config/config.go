package config

import (
	"strings"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const (
	BackendRemote = "remote"
	BackendStatic = "static"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	AuthModeSession = "session"
	AuthModeSecret  = "secret"
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	ContentBackend       string `mapstructure:"CONTENT_BACKEND"`
	ContentFile          string `mapstructure:"CONTENT_FILE"`
	DatabaseDriver       string `mapstructure:"DB_DRIVER"`
	DatabaseHost         string `mapstructure:"DB_HOST"`
	DatabasePort         int    `mapstructure:"DB_PORT"`
	DatabaseName         string `mapstructure:"DB_NAME"`
	DatabaseUser         string `mapstructure:"DB_USER"`
	DatabasePassword     string `mapstructure:"DB_PASSWORD"`
	DatabasePath         string `mapstructure:"DB_PATH"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	DatabaseCacheReset   int    `mapstructure:"DB_CACHE_RESET"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`
	AuthMode             string `mapstructure:"AUTH_MODE"`
	AdminSecret          string `mapstructure:"ADMIN_SECRET"`
	SessionSigningKey    string `mapstructure:"SESSION_SIGNING_KEY"`
	SessionTTLHours      int    `mapstructure:"SESSION_TTL_HOURS"`
	ShowsUpcomingOnly    bool   `mapstructure:"SHOWS_UPCOMING_ONLY"`
	SchedulerEnabled     bool   `mapstructure:"SCHEDULER_ENABLED"`
	ExportDir            string `mapstructure:"EXPORT_DIR"`
}

var ConfigInstance Config

var envVars = []string{
	"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
	"CONTENT_BACKEND", "CONTENT_FILE",
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_PATH",
	"DB_CACHE_ADDRESS", "DB_CACHE_PORT", "DB_CACHE_RESET",
	"CORS_ALLOW_ORIGINS",
	"AUTH_MODE", "ADMIN_SECRET", "SESSION_SIGNING_KEY", "SESSION_TTL_HOURS",
	"SHOWS_UPCOMING_ONLY", "SCHEDULER_ENABLED", "EXPORT_DIR",
}

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	// Enable automatic environment variable reading first
	viper.AutomaticEnv()
	setDefaults()

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	if viper.IsSet("SERVER_PORT") && viper.IsSet("CONTENT_BACKEND") {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(&config, log); err != nil {
		return Config{}, err
	}

	log.Info(
		"Successfully initialized config",
		"backend", config.ContentBackend,
		"authMode", config.AuthMode,
		"environment", config.Environment,
	)
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", 8280)
	viper.SetDefault("CONTENT_BACKEND", BackendRemote)
	viper.SetDefault("DB_DRIVER", DriverPostgres)
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_CACHE_RESET", -1)
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("AUTH_MODE", AuthModeSession)
	viper.SetDefault("SESSION_TTL_HOURS", 12)
}

// DatabaseConfigured reports whether enough connection settings exist to
// reach the relational backend.
func (c Config) DatabaseConfigured() bool {
	switch c.DatabaseDriver {
	case DriverSQLite:
		return c.DatabasePath != ""
	default:
		return c.DatabaseHost != "" && c.DatabaseName != "" && c.DatabaseUser != ""
	}
}

func (c Config) CacheConfigured() bool {
	return c.DatabaseCacheAddress != "" && c.DatabaseCachePort != 0
}

func (c Config) IsStatic() bool {
	return c.ContentBackend == BackendStatic
}

func validateConfig(config *Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	config.ContentBackend = strings.ToLower(strings.TrimSpace(config.ContentBackend))
	if config.ContentBackend != BackendRemote && config.ContentBackend != BackendStatic {
		return log.Error(
			"Fatal error: CONTENT_BACKEND must be remote or static",
			"backend", config.ContentBackend,
		)
	}

	config.DatabaseDriver = strings.ToLower(strings.TrimSpace(config.DatabaseDriver))
	if config.DatabaseDriver != DriverPostgres && config.DatabaseDriver != DriverSQLite {
		return log.Error(
			"Fatal error: DB_DRIVER must be postgres or sqlite",
			"driver", config.DatabaseDriver,
		)
	}

	config.AuthMode = strings.ToLower(strings.TrimSpace(config.AuthMode))
	if config.AuthMode != AuthModeSession && config.AuthMode != AuthModeSecret {
		return log.Error("Fatal error: AUTH_MODE must be session or secret", "authMode", config.AuthMode)
	}

	// The static backend has no accounts table to sign in against.
	if config.IsStatic() && config.AuthMode == AuthModeSession {
		log.Warn("static backend does not support session accounts, using secret mode")
		config.AuthMode = AuthModeSecret
	}

	if config.AuthMode == AuthModeSecret && config.AdminSecret == "" {
		return log.ErrMsg("Fatal error: ADMIN_SECRET required when AUTH_MODE is secret")
	}

	if config.SessionTTLHours <= 0 {
		return log.Error("Fatal error: invalid session ttl", "hours", config.SessionTTLHours)
	}

	if config.SessionSigningKey == "" {
		log.Warn("SESSION_SIGNING_KEY not set, generating an ephemeral key; sessions end on restart")
		config.SessionSigningKey = uuid.NewString()
	}

	ConfigInstance = *config
	return nil
}
