package repositories

import (
	contextutil "artistsite/internal/context"
	"artistsite/internal/database"
	. "artistsite/internal/models"
	"context"

	logger "github.com/Bparsons0904/goLogger"
)

type ShowRepository interface {
	GetAll(ctx context.Context) ([]Show, error)
	Create(ctx context.Context, show *Show) error
	Update(ctx context.Context, show *Show) (*Show, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type showRepository struct {
	db  database.DB
	log logger.Logger
}

func NewShowRepository(db database.DB) ShowRepository {
	return &showRepository{
		db:  db,
		log: logger.New("showRepository"),
	}
}

// GetAll returns every show ordered by date, ties broken by id.
func (r *showRepository) GetAll(ctx context.Context) ([]Show, error) {
	log := r.log.Function("GetAll")

	var shows []Show
	err := contextutil.DB(ctx, r.db.SQL).Order("date ASC").Order("id ASC").Find(&shows).Error
	if err != nil {
		return nil, log.Err("failed to get shows", err)
	}

	return shows, nil
}

func (r *showRepository) Create(ctx context.Context, show *Show) error {
	log := r.log.Function("Create")

	if err := contextutil.DB(ctx, r.db.SQL).Create(show).Error; err != nil {
		return log.Err("failed to create show", err, "venue", show.Venue)
	}

	return nil
}

// Update overwrites every editable field of the show with the given id and
// returns the stored row, or nil when the id is unknown.
func (r *showRepository) Update(ctx context.Context, show *Show) (*Show, error) {
	log := r.log.Function("Update")

	db := contextutil.DB(ctx, r.db.SQL)
	result := db.Model(&Show{}).Where("id = ?", show.ID).Updates(map[string]any{
		"date":       show.Date,
		"venue":      show.Venue,
		"city":       show.City,
		"event_name": show.EventName,
		"ticket_url": show.TicketURL,
	})
	if result.Error != nil {
		return nil, log.Err("failed to update show", result.Error, "id", show.ID)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var stored Show
	if err := db.First(&stored, "id = ?", show.ID).Error; err != nil {
		return nil, log.Err("failed to reload show", err, "id", show.ID)
	}

	return &stored, nil
}

func (r *showRepository) Delete(ctx context.Context, id int64) (int64, error) {
	log := r.log.Function("Delete")

	result := contextutil.DB(ctx, r.db.SQL).Delete(&Show{}, "id = ?", id)
	if result.Error != nil {
		return 0, log.Err("failed to delete show", result.Error, "id", id)
	}

	return result.RowsAffected, nil
}
