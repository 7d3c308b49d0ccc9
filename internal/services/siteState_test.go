package services

import (
	"artistsite/internal/models"
	"artistsite/internal/types"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore wraps a static store and fails LoadAll while failing is set.
type flakyStore struct {
	*StaticContentService
	failing bool
	loads   int
}

func (f *flakyStore) LoadAll(ctx context.Context) (*models.Content, error) {
	f.loads++
	if f.failing {
		return nil, fmt.Errorf("%w: connection refused", types.ErrLoad)
	}
	return f.StaticContentService.LoadAll(ctx)
}

func TestSiteState_SnapshotLoadsLazily(t *testing.T) {
	store := &flakyStore{StaticContentService: NewStaticContentServiceFrom(&models.Content{})}
	state := NewSiteState(store)
	ctx := context.Background()

	content, err := state.Snapshot(ctx)
	require.NoError(t, err)
	assert.NotNil(t, content)
	assert.False(t, state.LoadedAt().IsZero())

	_, err = state.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.loads, "held snapshot is reused")
}

func TestSiteState_LoadFailureSurfaces(t *testing.T) {
	store := &flakyStore{StaticContentService: NewStaticContentServiceFrom(&models.Content{}), failing: true}
	state := NewSiteState(store)

	content, err := state.Snapshot(context.Background())
	assert.Nil(t, content)
	assert.True(t, errors.Is(err, types.ErrLoad))
}

func TestSiteState_RefreshReplacesWholesale(t *testing.T) {
	store := &flakyStore{StaticContentService: NewStaticContentServiceFrom(&models.Content{})}
	state := NewSiteState(store)
	ctx := context.Background()

	before, err := state.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, before.Shows)

	_, err = store.CreateShow(ctx, ShowInput{Date: "2025-03-01", Venue: "The Cave", City: "Austin"})
	require.NoError(t, err)
	state.Refresh(ctx)

	after, err := state.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, after.Shows, 1)
	assert.Empty(t, before.Shows, "earlier snapshot is untouched")
}

func TestSiteState_FailedRefreshKeepsPrevious(t *testing.T) {
	store := &flakyStore{StaticContentService: NewStaticContentServiceFrom(&models.Content{})}
	state := NewSiteState(store)
	ctx := context.Background()

	before, err := state.Snapshot(ctx)
	require.NoError(t, err)

	store.failing = true
	state.Refresh(ctx)

	after, err := state.Snapshot(ctx)
	require.NoError(t, err)
	assert.Same(t, before, after)
}
