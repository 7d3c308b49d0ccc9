package database

import (
	"artistsite/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// ModelsToMigrate lists every table the relational content backend owns,
// parents before children.
var ModelsToMigrate = []any{
	&models.ArtistInfo{},
	&models.Release{},
	&models.ReleaseLink{},
	&models.Show{},
	&models.AdminUser{},
}

// MigrateModels runs GORM AutoMigrate for all models
func (s *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	for _, model := range ModelsToMigrate {
		if err := s.SQL.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}
