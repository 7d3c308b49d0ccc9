package repositories

import (
	contextutil "artistsite/internal/context"
	"artistsite/internal/database"
	. "artistsite/internal/models"
	"context"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm/clause"
)

type ReleaseLinkRepository interface {
	GetByReleaseID(ctx context.Context, releaseID int64) ([]ReleaseLink, error)
	Upsert(ctx context.Context, links []*ReleaseLink) error
	Create(ctx context.Context, links []*ReleaseLink) error
	DeleteExcept(ctx context.Context, releaseID int64, keepIDs []int64) (int64, error)
	DeleteByReleaseID(ctx context.Context, releaseID int64) (int64, error)
}

type releaseLinkRepository struct {
	db  database.DB
	log logger.Logger
}

func NewReleaseLinkRepository(db database.DB) ReleaseLinkRepository {
	return &releaseLinkRepository{
		db:  db,
		log: logger.New("releaseLinkRepository"),
	}
}

func (r *releaseLinkRepository) GetByReleaseID(
	ctx context.Context,
	releaseID int64,
) ([]ReleaseLink, error) {
	log := r.log.Function("GetByReleaseID")

	var links []ReleaseLink
	err := contextutil.DB(ctx, r.db.SQL).
		Where("release_id = ?", releaseID).
		Order("id ASC").
		Find(&links).Error
	if err != nil {
		return nil, log.Err("failed to get release links", err, "releaseID", releaseID)
	}

	return links, nil
}

// Upsert overwrites the platform and url of links that already carry an id.
// A link never moves to another release; callers pass ids the release owns.
func (r *releaseLinkRepository) Upsert(ctx context.Context, links []*ReleaseLink) error {
	log := r.log.Function("Upsert")

	if len(links) == 0 {
		return nil
	}

	err := contextutil.DB(ctx, r.db.SQL).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"platform", "url", "updated_at"}),
	}).Create(&links).Error
	if err != nil {
		return log.Err("failed to upsert release links", err, "count", len(links))
	}

	return nil
}

// Create inserts links without ids; the generated ids are written back into
// the passed structs.
func (r *releaseLinkRepository) Create(ctx context.Context, links []*ReleaseLink) error {
	log := r.log.Function("Create")

	if len(links) == 0 {
		return nil
	}

	if err := contextutil.DB(ctx, r.db.SQL).Create(&links).Error; err != nil {
		return log.Err("failed to create release links", err, "count", len(links))
	}

	return nil
}

// DeleteExcept removes every link of the release whose id is not in keepIDs.
// An empty keepIDs removes all of them.
func (r *releaseLinkRepository) DeleteExcept(
	ctx context.Context,
	releaseID int64,
	keepIDs []int64,
) (int64, error) {
	log := r.log.Function("DeleteExcept")

	query := contextutil.DB(ctx, r.db.SQL).Where("release_id = ?", releaseID)
	if len(keepIDs) > 0 {
		query = query.Where("id NOT IN ?", keepIDs)
	}

	result := query.Delete(&ReleaseLink{})
	if result.Error != nil {
		return 0, log.Err(
			"failed to delete stale release links",
			result.Error,
			"releaseID", releaseID,
			"kept", len(keepIDs),
		)
	}

	return result.RowsAffected, nil
}

func (r *releaseLinkRepository) DeleteByReleaseID(
	ctx context.Context,
	releaseID int64,
) (int64, error) {
	return r.DeleteExcept(ctx, releaseID, nil)
}
