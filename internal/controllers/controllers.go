package controllers

import (
	"artistsite/config"
	"artistsite/internal/services"

	adminController "artistsite/internal/controllers/admin"
	authController "artistsite/internal/controllers/auth"
	siteController "artistsite/internal/controllers/site"
)

type Controllers struct {
	Site  siteController.SiteControllerInterface
	Auth  authController.AuthControllerInterface
	Admin adminController.AdminControllerInterface
}

func New(services services.Service, config config.Config) Controllers {
	return Controllers{
		Site:  siteController.New(services, config),
		Auth:  authController.New(services),
		Admin: adminController.New(services),
	}
}
