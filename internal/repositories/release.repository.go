package repositories

import (
	contextutil "artistsite/internal/context"
	"artistsite/internal/database"
	. "artistsite/internal/models"
	"context"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReleaseRepository interface {
	GetAll(ctx context.Context) ([]Release, error)
	GetByID(ctx context.Context, id int64) (*Release, error)
	Create(ctx context.Context, release *Release) error
	UpdateFields(ctx context.Context, id int64, title, imageURL string) (*Release, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type releaseRepository struct {
	db  database.DB
	log logger.Logger
}

func NewReleaseRepository(db database.DB) ReleaseRepository {
	return &releaseRepository{
		db:  db,
		log: logger.New("releaseRepository"),
	}
}

func preloadLinks(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// GetAll returns every release newest first, each with its links in
// creation order.
func (r *releaseRepository) GetAll(ctx context.Context) ([]Release, error) {
	log := r.log.Function("GetAll")

	var releases []Release
	err := contextutil.DB(ctx, r.db.SQL).
		Preload("Links", preloadLinks).
		Order("id DESC").
		Find(&releases).Error
	if err != nil {
		return nil, log.Err("failed to get releases", err)
	}

	return releases, nil
}

// GetByID returns nil without error when no release has the id.
func (r *releaseRepository) GetByID(ctx context.Context, id int64) (*Release, error) {
	log := r.log.Function("GetByID")

	var release Release
	err := contextutil.DB(ctx, r.db.SQL).
		Preload("Links", preloadLinks).
		First(&release, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, log.Err("failed to get release by ID", err, "id", id)
	}

	return &release, nil
}

// Create inserts the release row only. Links are written separately through
// ReleaseLinkRepository.
func (r *releaseRepository) Create(ctx context.Context, release *Release) error {
	log := r.log.Function("Create")

	err := contextutil.DB(ctx, r.db.SQL).Omit(clause.Associations).Create(release).Error
	if err != nil {
		return log.Err("failed to create release", err, "title", release.Title)
	}

	return nil
}

// UpdateFields writes title and image url. It returns nil without error when
// the release does not exist.
func (r *releaseRepository) UpdateFields(
	ctx context.Context,
	id int64,
	title, imageURL string,
) (*Release, error) {
	log := r.log.Function("UpdateFields")

	db := contextutil.DB(ctx, r.db.SQL)
	result := db.Model(&Release{}).Where("id = ?", id).Updates(map[string]any{
		"title":     title,
		"image_url": imageURL,
	})
	if result.Error != nil {
		return nil, log.Err("failed to update release", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var release Release
	if err := db.First(&release, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to reload release", err, "id", id)
	}

	return &release, nil
}

// Delete removes the release row and reports how many rows went away.
func (r *releaseRepository) Delete(ctx context.Context, id int64) (int64, error) {
	log := r.log.Function("Delete")

	result := contextutil.DB(ctx, r.db.SQL).Delete(&Release{}, "id = ?", id)
	if result.Error != nil {
		return 0, log.Err("failed to delete release", result.Error, "id", id)
	}

	return result.RowsAffected, nil
}
