package repositories

import (
	"artistsite/internal/database"
	"errors"

	"gorm.io/gorm"
)

type Repository struct {
	ArtistInfo  ArtistInfoRepository
	Release     ReleaseRepository
	ReleaseLink ReleaseLinkRepository
	Show        ShowRepository
	AdminUser   AdminUserRepository
}

func New(db database.DB) Repository {
	return Repository{
		ArtistInfo:  NewArtistInfoRepository(db),
		Release:     NewReleaseRepository(db),
		ReleaseLink: NewReleaseLinkRepository(db),
		Show:        NewShowRepository(db),
		AdminUser:   NewAdminUserRepository(db),
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
