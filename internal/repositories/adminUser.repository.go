package repositories

import (
	contextutil "artistsite/internal/context"
	"artistsite/internal/database"
	. "artistsite/internal/models"
	"context"
	"time"

	logger "github.com/Bparsons0904/goLogger"
)

type AdminUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
	GetByID(ctx context.Context, id int64) (*AdminUser, error)
	Create(ctx context.Context, user *AdminUser) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

type adminUserRepository struct {
	db  database.DB
	log logger.Logger
}

func NewAdminUserRepository(db database.DB) AdminUserRepository {
	return &adminUserRepository{
		db:  db,
		log: logger.New("adminUserRepository"),
	}
}

// GetByEmail matches on the normalized address and returns nil when no
// account exists.
func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	log := r.log.Function("GetByEmail")

	var user AdminUser
	err := contextutil.DB(ctx, r.db.SQL).First(&user, "email = ?", NormalizeEmail(email)).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, log.Err("failed to get admin user by email", err)
	}

	return &user, nil
}

func (r *adminUserRepository) GetByID(ctx context.Context, id int64) (*AdminUser, error) {
	log := r.log.Function("GetByID")

	var user AdminUser
	if err := contextutil.DB(ctx, r.db.SQL).First(&user, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, log.Err("failed to get admin user by ID", err, "id", id)
	}

	return &user, nil
}

func (r *adminUserRepository) Create(ctx context.Context, user *AdminUser) error {
	log := r.log.Function("Create")

	if err := contextutil.DB(ctx, r.db.SQL).Create(user).Error; err != nil {
		return log.Err("failed to create admin user", err)
	}

	return nil
}

func (r *adminUserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	log := r.log.Function("TouchLastLogin")

	err := contextutil.DB(ctx, r.db.SQL).
		Model(&AdminUser{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
	if err != nil {
		return log.Err("failed to update last login", err, "id", id)
	}

	return nil
}
