package handlers

import (
	"artistsite/internal/app"
	"artistsite/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	router.Use(app.Middleware.TraceID())

	if !app.Configured {
		router.Use(app.Middleware.ConfigGate())
		HealthHandler(router.Group("/api"), app.Config)
		return nil
	}

	router.Use(app.Middleware.Session())

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewContentHandler(*app, api).Register()
	NewAuthHandler(*app, api).Register()
	NewAdminHandler(*app, api).Register()

	NewSiteHandler(*app, router).Register()

	return nil
}
