package repositories

import (
	contextutil "artistsite/internal/context"
	"artistsite/internal/database"
	. "artistsite/internal/models"
	"context"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm/clause"
)

type ArtistInfoRepository interface {
	Get(ctx context.Context) (*ArtistInfo, error)
	Upsert(ctx context.Context, info *ArtistInfo) error
}

type artistInfoRepository struct {
	db  database.DB
	log logger.Logger
}

func NewArtistInfoRepository(db database.DB) ArtistInfoRepository {
	return &artistInfoRepository{
		db:  db,
		log: logger.New("artistInfoRepository"),
	}
}

// Get returns the first artist info row. A missing row is not an error; the
// caller renders placeholders from the zero value.
func (r *artistInfoRepository) Get(ctx context.Context) (*ArtistInfo, error) {
	log := r.log.Function("Get")

	var info ArtistInfo
	err := contextutil.DB(ctx, r.db.SQL).Order("id ASC").First(&info).Error
	if err != nil {
		if isNotFound(err) {
			return &ArtistInfo{}, nil
		}
		return nil, log.Err("failed to get artist info", err)
	}

	return &info, nil
}

func (r *artistInfoRepository) Upsert(ctx context.Context, info *ArtistInfo) error {
	log := r.log.Function("Upsert")

	if info.ID == 0 {
		info.ID = 1
	}

	err := contextutil.DB(ctx, r.db.SQL).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"artist_name",
			"logo_url",
			"hero_image",
			"soundcloud_embed_url",
			"socials",
			"updated_at",
		}),
	}).Create(info).Error
	if err != nil {
		return log.Err("failed to upsert artist info", err, "id", info.ID)
	}

	return nil
}
