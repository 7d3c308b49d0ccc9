package middleware

import (
	"artistsite/config"
	authController "artistsite/internal/controllers/auth"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	Config config.Config
	auth   authController.AuthControllerInterface
	log    logger.Logger
}

func New(config config.Config, auth authController.AuthControllerInterface) Middleware {
	log := logger.New("middleware")

	return Middleware{
		Config: config,
		auth:   auth,
		log:    log,
	}
}
