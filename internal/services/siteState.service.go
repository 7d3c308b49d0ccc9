package services

import (
	"artistsite/internal/models"
	"context"
	"sync"
	"time"

	logger "github.com/Bparsons0904/goLogger"
)

// SiteState holds the content snapshot pages render from. The snapshot is
// replaced wholesale after every admin mutation and never edited in place.
type SiteState struct {
	store    ContentStore
	mu       sync.RWMutex
	content  *models.Content
	loadedAt time.Time
	log      logger.Logger
}

func NewSiteState(store ContentStore) *SiteState {
	return &SiteState{
		store: store,
		log:   logger.New("siteState"),
	}
}

func (s *SiteState) Store() ContentStore {
	return s.store
}

// Load replaces the snapshot with a fresh read from the store. On failure
// the held snapshot is left untouched.
func (s *SiteState) Load(ctx context.Context) error {
	log := s.log.Function("Load").TraceFromContext(ctx)

	content, err := s.store.LoadAll(ctx)
	if err != nil {
		return log.Err("failed to load content", err)
	}

	s.mu.Lock()
	s.content = content
	s.loadedAt = time.Now()
	s.mu.Unlock()

	log.Debug(
		"Content loaded",
		"releases", len(content.Releases),
		"shows", len(content.Shows),
	)
	return nil
}

// Refresh reloads after a mutation. A failed reload keeps the previous
// snapshot and is only logged.
func (s *SiteState) Refresh(ctx context.Context) {
	if err := s.Load(ctx); err != nil {
		s.log.Function("Refresh").Warn("keeping previous snapshot after failed refresh", "error", err)
	}
}

// Snapshot returns the held content, loading it first when nothing has been
// loaded yet. The result is shared and must not be modified.
func (s *SiteState) Snapshot(ctx context.Context) (*models.Content, error) {
	s.mu.RLock()
	content := s.content
	s.mu.RUnlock()

	if content != nil {
		return content, nil
	}

	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content, nil
}

func (s *SiteState) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
