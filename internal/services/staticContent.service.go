package services

import (
	"artistsite/internal/content"
	"artistsite/internal/models"
	"artistsite/internal/types"
	"context"
	"fmt"
	"sync"
	"time"

	logger "github.com/Bparsons0904/goLogger"
)

// StaticContentService serves content from the bundled content file. Each
// mutation swaps in a new snapshot; snapshots are never edited in place.
// Nothing is written back to disk; Export hands the current snapshot out.
type StaticContentService struct {
	mu       sync.RWMutex
	snapshot *models.Content
	lastID   int64
	now      func() time.Time
	log      logger.Logger
}

// NewStaticContentService loads the content file at path, or the bundled
// default when path is empty.
func NewStaticContentService(path string) (*StaticContentService, error) {
	log := logger.New("staticContentService").Function("NewStaticContentService")

	file, err := content.Load(path)
	if err != nil {
		return nil, log.Err("failed to load content file", loadError("content file", err), "path", path)
	}

	snapshot, err := file.ToContent()
	if err != nil {
		return nil, log.Err("invalid content file", loadError("content file", err), "path", path)
	}

	return NewStaticContentServiceFrom(snapshot), nil
}

// NewStaticContentServiceFrom seeds the store with an in-memory snapshot.
func NewStaticContentServiceFrom(snapshot *models.Content) *StaticContentService {
	snapshot = snapshot.Clone()
	models.SortShowsByDate(snapshot.Shows)

	return &StaticContentService{
		snapshot: snapshot,
		now:      time.Now,
		log:      logger.New("staticContentService"),
	}
}

func (s *StaticContentService) Variant() StoreVariant {
	return StoreStatic
}

func (s *StaticContentService) LoadAll(ctx context.Context) (*models.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot.Clone(), nil
}

func (s *StaticContentService) Export(ctx context.Context) (*models.ContentFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.NewContentFile(s.snapshot), nil
}

// nextID returns a millisecond timestamp id that is unique within the held
// snapshot. Callers hold the write lock.
func (s *StaticContentService) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}

	taken := make(map[int64]struct{}, len(s.snapshot.Releases)+len(s.snapshot.Shows))
	for _, release := range s.snapshot.Releases {
		taken[release.ID] = struct{}{}
	}
	for _, show := range s.snapshot.Shows {
		taken[show.ID] = struct{}{}
	}
	for {
		if _, ok := taken[id]; !ok {
			break
		}
		id++
	}

	s.lastID = id
	return id
}

// update builds the next snapshot from a private copy and publishes it only
// when fn succeeds.
func (s *StaticContentService) update(fn func(next *models.Content) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot.Clone()
	if err := fn(next); err != nil {
		return err
	}

	s.snapshot = next
	return nil
}

func releaseLinks(releaseID int64, inputs []LinkInput) []models.ReleaseLink {
	links := make([]models.ReleaseLink, 0, len(inputs))
	for i, input := range inputs {
		links = append(links, models.ReleaseLink{
			BaseModel: models.BaseModel{ID: int64(i + 1)},
			ReleaseID: releaseID,
			Platform:  input.Platform,
			URL:       input.URL,
		})
	}
	return links
}

func (s *StaticContentService) CreateRelease(
	ctx context.Context,
	input ReleaseInput,
) (*models.Release, error) {
	input, err := input.Normalize()
	if err != nil {
		return nil, err
	}

	var created models.Release
	err = s.update(func(next *models.Content) error {
		id := s.nextID()
		created = models.Release{
			BaseModel: models.BaseModel{ID: id},
			Title:     input.Title,
			ImageURL:  input.ImageURL,
			Links:     releaseLinks(id, input.Links),
		}
		next.Releases = append(next.Releases, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Function("CreateRelease").Info("Release created", "id", created.ID)
	return &created, nil
}

// UpdateRelease replaces the release wholesale, links included.
func (s *StaticContentService) UpdateRelease(
	ctx context.Context,
	id int64,
	input ReleaseInput,
) (*models.Release, error) {
	input, err := input.Normalize()
	if err != nil {
		return nil, err
	}

	var updated models.Release
	err = s.update(func(next *models.Content) error {
		for i := range next.Releases {
			if next.Releases[i].ID != id {
				continue
			}
			updated = next.Releases[i]
			updated.Title = input.Title
			updated.ImageURL = input.ImageURL
			updated.Links = releaseLinks(id, input.Links)
			next.Releases[i] = updated
			return nil
		}
		return fmt.Errorf("%w: release %d", types.ErrNotFound, id)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *StaticContentService) DeleteRelease(ctx context.Context, id int64) error {
	return s.update(func(next *models.Content) error {
		kept := next.Releases[:0]
		for _, release := range next.Releases {
			if release.ID != id {
				kept = append(kept, release)
			}
		}
		next.Releases = kept
		return nil
	})
}

func (s *StaticContentService) CreateShow(ctx context.Context, input ShowInput) (*models.Show, error) {
	show, err := input.ToShow()
	if err != nil {
		return nil, err
	}

	err = s.update(func(next *models.Content) error {
		show.ID = s.nextID()
		next.Shows = append(next.Shows, show)
		models.SortShowsByDate(next.Shows)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Function("CreateShow").Info("Show created", "id", show.ID)
	return &show, nil
}

func (s *StaticContentService) UpdateShow(
	ctx context.Context,
	id int64,
	input ShowInput,
) (*models.Show, error) {
	show, err := input.ToShow()
	if err != nil {
		return nil, err
	}
	show.ID = id

	err = s.update(func(next *models.Content) error {
		for i := range next.Shows {
			if next.Shows[i].ID == id {
				show.FileID = next.Shows[i].FileID
				next.Shows[i] = show
				models.SortShowsByDate(next.Shows)
				return nil
			}
		}
		return fmt.Errorf("%w: show %d", types.ErrNotFound, id)
	})
	if err != nil {
		return nil, err
	}

	return &show, nil
}

func (s *StaticContentService) DeleteShow(ctx context.Context, id int64) error {
	return s.update(func(next *models.Content) error {
		kept := next.Shows[:0]
		for _, show := range next.Shows {
			if show.ID != id {
				kept = append(kept, show)
			}
		}
		next.Shows = kept
		return nil
	})
}
