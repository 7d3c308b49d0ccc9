package siteController

import (
	"artistsite/internal/models"
	"artistsite/internal/services"
	"artistsite/internal/types"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newSite(t *testing.T) *services.SiteState {
	t.Helper()

	snapshot := &models.Content{
		ArtistInfo: models.ArtistInfo{
			Socials: datatypes.NewJSONType(models.Socials{Instagram: "https://i", Spotify: "https://s"}),
		},
		Shows: []models.Show{
			{BaseModel: models.BaseModel{ID: 1}, Date: models.NewDate(2025, 2, 28), Venue: "Past", City: "Austin"},
			{BaseModel: models.BaseModel{ID: 2}, Date: models.NewDate(2025, 3, 1), Venue: "Today", City: "Austin"},
			{BaseModel: models.BaseModel{ID: 3}, Date: models.NewDate(2025, 4, 1), Venue: "Later", City: "Austin"},
		},
	}
	return services.NewSiteState(services.NewStaticContentServiceFrom(snapshot))
}

func TestSiteController_GetPageAllShows(t *testing.T) {
	controller := NewSiteController(newSite(t), false)

	page, err := controller.GetPage(context.Background(), types.ViewVisitor)
	require.NoError(t, err)

	assert.Equal(t, types.ViewVisitor, page.Mode)
	assert.Equal(t, "Artist Name", page.ArtistName)
	assert.Len(t, page.Shows, 3)
	require.Len(t, page.Socials, 2)
	assert.Equal(t, "Instagram", page.Socials[0].Label)

	for i := 1; i < len(page.Shows); i++ {
		assert.False(t, page.Shows[i].Date.Before(page.Shows[i-1].Date))
	}
}

func TestSiteController_UpcomingOnly(t *testing.T) {
	controller := NewSiteController(newSite(t), true)
	controller.now = func() time.Time { return time.Date(2025, 3, 1, 21, 0, 0, 0, time.UTC) }

	page, err := controller.GetPage(context.Background(), types.ViewVisitor)
	require.NoError(t, err)

	require.Len(t, page.Shows, 2)
	assert.Equal(t, "Today", page.Shows[0].Venue, "shows later the same day still count")
	assert.Len(t, page.Content.Shows, 3, "snapshot itself is not filtered")

	content, err := controller.GetContent(context.Background())
	require.NoError(t, err)
	assert.Len(t, content.Shows, 3)
}
