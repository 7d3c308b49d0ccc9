package app

import (
	"artistsite/config"
	"artistsite/internal/controllers"
	"artistsite/internal/database"
	"artistsite/internal/handlers/middleware"
	"artistsite/internal/jobs"
	"artistsite/internal/services"
	"context"
	"time"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config

	// Configured is false when the relational backend is selected without
	// connection settings. Only the configuration page is served then.
	Configured bool

	Services    services.Service
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	if !config.IsStatic() && !config.DatabaseConfigured() {
		log.Warn("database not configured, serving configuration page only")
		return &App{
			Config:     config,
			Middleware: middleware.New(config, nil),
		}, nil
	}

	var db database.DB
	if config.IsStatic() {
		db, err = database.NewCache(config)
	} else {
		db, err = database.New(config)
	}
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	app, err := NewWithDatabase(config, db)
	if err != nil {
		_ = db.Close()
		return &App{}, err
	}

	return app, nil
}

// NewWithDatabase wires services, controllers and jobs over an already
// opened database.
func NewWithDatabase(config config.Config, db database.DB) (*App, error) {
	log := logger.New("app").Function("NewWithDatabase")

	service, err := services.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// A failed first load is not fatal: pages show the load error and the
	// next request tries again.
	if err := service.Site.Load(ctx); err != nil {
		log.Warn("initial content load failed", "error", err)
	}

	controllers := controllers.New(service, config)

	if config.SchedulerEnabled {
		if err := jobs.RegisterAllJobs(service.Scheduler, config, service); err != nil {
			return &App{}, log.Err("failed to register jobs", err)
		}
		if err := service.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:    db,
		Config:      config,
		Configured:  true,
		Middleware:  middleware.New(config, controllers.Auth),
		Services:    service,
		Controllers: controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	if !a.Config.IsStatic() && a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	nilChecks := []any{
		a.Services.Content,
		a.Services.Site,
		a.Services.Auth,
		a.Services.Sessions,
		a.Services.Scheduler,
		a.Controllers.Site,
		a.Controllers.Auth,
		a.Controllers.Admin,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil && a.Services.Scheduler.IsRunning() {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
