package jobs

import (
	"artistsite/config"
	"artistsite/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	Daily  = services.Daily
	Hourly = services.Hourly
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	service services.Service,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")
	log.Info("Registering jobs")

	if config.ExportDir != "" {
		exportJob := NewContentExportJob(service.Content, config.ExportDir, Daily)
		if err := schedulerService.AddJob(exportJob); err != nil {
			return log.Err("failed to register content export job", err)
		}
		log.Info("Registered content export job", "schedule", "daily", "dir", config.ExportDir)
	}

	if sweeper, ok := service.Sessions.Store().(services.SessionSweeper); ok {
		sweepJob := NewSessionSweepJob(sweeper, Hourly)
		if err := schedulerService.AddJob(sweepJob); err != nil {
			return log.Err("failed to register session sweep job", err)
		}
		log.Info("Registered session sweep job", "schedule", "hourly")
	}

	return nil
}
