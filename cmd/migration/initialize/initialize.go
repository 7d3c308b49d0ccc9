package initialize

import (
	"artistsite/config"
	"artistsite/internal/database"
	"artistsite/internal/repositories"
	"context"

	logger "github.com/Bparsons0904/goLogger"

	. "artistsite/internal/models"
)

// InitializeTables makes sure the single artist_info row exists so the
// page has a row to read even before content is seeded.
func InitializeTables(db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential data")

	ctx := context.Background()
	artistRepo := repositories.NewArtistInfoRepository(db)

	existing, err := artistRepo.Get(ctx)
	if err != nil {
		return log.Err("failed to read artist info", err)
	}

	if existing.ID != 0 {
		log.Debug("Artist info already exists", "artistName", existing.ArtistName)
		return nil
	}

	if err := artistRepo.Upsert(ctx, &ArtistInfo{}); err != nil {
		return log.Err("failed to create artist info", err)
	}

	log.Info("Table initialization complete")
	return nil
}
