package seed

import (
	"artistsite/config"
	"artistsite/internal/content"
	"artistsite/internal/database"
	"artistsite/internal/repositories"
	"artistsite/internal/services"
	"context"
	"fmt"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"

	. "artistsite/internal/models"
)

// Seed imports the content file (CONTENT_FILE, or the bundled sample) into
// the relational tables so both backends start from the same content.
func Seed(db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("Seed")
	log.Info("Seeding content", "file", config.ContentFile)

	file, err := content.Load(config.ContentFile)
	if err != nil {
		return log.Err("failed to load content file", err)
	}

	snapshot, err := file.ToContent()
	if err != nil {
		return log.Err("invalid content file", err)
	}

	ctx := context.Background()
	transaction := services.NewTransactionService(db)
	if err := Import(ctx, repositories.New(db), transaction, snapshot); err != nil {
		return log.Err("failed to import content", err)
	}

	if config.DatabaseDriver == "postgres" {
		if err := resetSequences(db.SQL); err != nil {
			return log.Err("failed to reset id sequences", err)
		}
	}

	log.Info(
		"Seeded content",
		"releases", len(snapshot.Releases),
		"shows", len(snapshot.Shows),
	)
	return nil
}

// Import writes a snapshot in one transaction. Release and show ids from
// the file are kept; link ids are left to the database.
func Import(
	ctx context.Context,
	repos repositories.Repository,
	transaction *services.TransactionService,
	snapshot *Content,
) error {
	return transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		artist := snapshot.ArtistInfo
		if err := repos.ArtistInfo.Upsert(ctx, &artist); err != nil {
			return err
		}

		for _, release := range snapshot.Releases {
			links := release.Links
			release.Links = nil
			if err := repos.Release.Create(ctx, &release); err != nil {
				return fmt.Errorf("release %d: %w", release.ID, err)
			}

			rows := make([]*ReleaseLink, 0, len(links))
			for _, link := range links {
				rows = append(rows, &ReleaseLink{
					ReleaseID: release.ID,
					Platform:  link.Platform,
					URL:       link.URL,
				})
			}
			if err := repos.ReleaseLink.Create(ctx, rows); err != nil {
				return fmt.Errorf("links of release %d: %w", release.ID, err)
			}
		}

		for _, show := range snapshot.Shows {
			if err := repos.Show.Create(ctx, &show); err != nil {
				return fmt.Errorf("show %d: %w", show.ID, err)
			}
		}

		return nil
	})
}

// resetSequences moves postgres id sequences past the imported ids so rows
// created later sort after them.
func resetSequences(db *gorm.DB) error {
	for _, table := range []string{"releases", "release_links", "shows"} {
		query := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)",
			table,
		)
		if err := db.Exec(query).Error; err != nil {
			return fmt.Errorf("%s: %w", table, err)
		}
	}
	return nil
}
