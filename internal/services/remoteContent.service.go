package services

import (
	"artistsite/internal/models"
	"artistsite/internal/repositories"
	"artistsite/internal/types"
	"context"
	"fmt"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// RemoteContentService keeps content in the relational database. Release
// writes touch scalar columns only; links are reconciled separately.
type RemoteContentService struct {
	repos       repositories.Repository
	transaction *TransactionService
	log         logger.Logger
}

func NewRemoteContentService(
	repos repositories.Repository,
	transaction *TransactionService,
) *RemoteContentService {
	return &RemoteContentService{
		repos:       repos,
		transaction: transaction,
		log:         logger.New("remoteContentService"),
	}
}

func (s *RemoteContentService) Variant() StoreVariant {
	return StoreRemote
}

// LoadAll reads artist info, shows and releases. Any failing read fails the
// whole load.
func (s *RemoteContentService) LoadAll(ctx context.Context) (*models.Content, error) {
	log := s.log.Function("LoadAll")

	info, err := s.repos.ArtistInfo.Get(ctx)
	if err != nil {
		return nil, log.Err("failed to load artist info", loadError("artist info", err))
	}

	shows, err := s.repos.Show.GetAll(ctx)
	if err != nil {
		return nil, log.Err("failed to load shows", loadError("shows", err))
	}

	releases, err := s.repos.Release.GetAll(ctx)
	if err != nil {
		return nil, log.Err("failed to load releases", loadError("releases", err))
	}

	for i := range releases {
		if releases[i].Links == nil {
			releases[i].Links = []models.ReleaseLink{}
		}
	}
	if shows == nil {
		shows = []models.Show{}
	}
	if releases == nil {
		releases = []models.Release{}
	}

	return &models.Content{
		ArtistInfo: *info,
		Releases:   releases,
		Shows:      shows,
	}, nil
}

// CreateRelease inserts the scalar fields. Links in the input are ignored;
// callers follow up with ReplaceReleaseLinks using the returned id.
func (s *RemoteContentService) CreateRelease(
	ctx context.Context,
	input ReleaseInput,
) (*models.Release, error) {
	log := s.log.Function("CreateRelease")

	input, err := input.Normalize()
	if err != nil {
		return nil, err
	}

	release := &models.Release{Title: input.Title, ImageURL: input.ImageURL}
	if err := s.repos.Release.Create(ctx, release); err != nil {
		return nil, log.Err("failed to create release", persistError("create release", err))
	}

	return release, nil
}

func (s *RemoteContentService) UpdateRelease(
	ctx context.Context,
	id int64,
	input ReleaseInput,
) (*models.Release, error) {
	log := s.log.Function("UpdateRelease")

	input, err := input.Normalize()
	if err != nil {
		return nil, err
	}

	release, err := s.repos.Release.UpdateFields(ctx, id, input.Title, input.ImageURL)
	if err != nil {
		return nil, log.Err("failed to update release", persistError("update release", err), "id", id)
	}
	if release == nil {
		return nil, fmt.Errorf("%w: release %d", types.ErrNotFound, id)
	}

	return release, nil
}

// DeleteRelease removes the release and its links together. An unknown id
// is not an error.
func (s *RemoteContentService) DeleteRelease(ctx context.Context, id int64) error {
	log := s.log.Function("DeleteRelease")

	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := s.repos.ReleaseLink.DeleteByReleaseID(ctx, id); err != nil {
			return err
		}
		_, err := s.repos.Release.Delete(ctx, id)
		return err
	})
	if err != nil {
		return log.Err("failed to delete release", persistError("delete release", err), "id", id)
	}

	return nil
}

// ReplaceReleaseLinks makes the stored links of a release match links.
// Rows whose id is a current link of this release are upserted, every other
// row is inserted under a new id, and the remaining stored links of the
// release are deleted. The steps are not wrapped in a transaction.
func (s *RemoteContentService) ReplaceReleaseLinks(
	ctx context.Context,
	releaseID int64,
	links []LinkInput,
) error {
	log := s.log.Function("ReplaceReleaseLinks")

	links, err := NormalizeLinks(links)
	if err != nil {
		return err
	}

	current, err := s.repos.ReleaseLink.GetByReleaseID(ctx, releaseID)
	if err != nil {
		return log.Err("failed to load current links", persistError("load links", err), "releaseID", releaseID)
	}
	owned := make(map[int64]bool, len(current))
	for _, link := range current {
		owned[link.ID] = true
	}

	existing := make([]*models.ReleaseLink, 0, len(links))
	added := make([]*models.ReleaseLink, 0, len(links))
	for _, link := range links {
		row := &models.ReleaseLink{
			ReleaseID: releaseID,
			Platform:  link.Platform,
			URL:       link.URL,
		}
		// An id this release does not own is stored as a new row.
		if owned[link.ID] {
			row.ID = link.ID
			owned[link.ID] = false
			existing = append(existing, row)
		} else {
			added = append(added, row)
		}
	}

	if err := s.repos.ReleaseLink.Upsert(ctx, existing); err != nil {
		return log.Err("failed to upsert links", persistError("upsert links", err), "releaseID", releaseID)
	}

	if err := s.repos.ReleaseLink.Create(ctx, added); err != nil {
		return log.Err("failed to insert links", persistError("insert links", err), "releaseID", releaseID)
	}

	keep := make([]int64, 0, len(existing)+len(added))
	for _, row := range existing {
		keep = append(keep, row.ID)
	}
	for _, row := range added {
		keep = append(keep, row.ID)
	}

	removed, err := s.repos.ReleaseLink.DeleteExcept(ctx, releaseID, keep)
	if err != nil {
		return log.Err("failed to delete removed links", persistError("delete links", err), "releaseID", releaseID)
	}

	log.Debug(
		"Reconciled release links",
		"releaseID", releaseID,
		"upserted", len(existing),
		"inserted", len(added),
		"deleted", removed,
	)
	return nil
}

func (s *RemoteContentService) CreateShow(ctx context.Context, input ShowInput) (*models.Show, error) {
	log := s.log.Function("CreateShow")

	show, err := input.ToShow()
	if err != nil {
		return nil, err
	}

	if err := s.repos.Show.Create(ctx, &show); err != nil {
		return nil, log.Err("failed to create show", persistError("create show", err))
	}

	return &show, nil
}

func (s *RemoteContentService) UpdateShow(
	ctx context.Context,
	id int64,
	input ShowInput,
) (*models.Show, error) {
	log := s.log.Function("UpdateShow")

	show, err := input.ToShow()
	if err != nil {
		return nil, err
	}
	show.ID = id

	stored, err := s.repos.Show.Update(ctx, &show)
	if err != nil {
		return nil, log.Err("failed to update show", persistError("update show", err), "id", id)
	}
	if stored == nil {
		return nil, fmt.Errorf("%w: show %d", types.ErrNotFound, id)
	}

	return stored, nil
}

// DeleteShow is a no-op for an unknown id.
func (s *RemoteContentService) DeleteShow(ctx context.Context, id int64) error {
	log := s.log.Function("DeleteShow")

	if _, err := s.repos.Show.Delete(ctx, id); err != nil {
		return log.Err("failed to delete show", persistError("delete show", err), "id", id)
	}

	return nil
}
