package jobs

import (
	"artistsite/config"
	"artistsite/internal/content"
	"artistsite/internal/models"
	"artistsite/internal/services"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentExportJob_WritesDailyFile(t *testing.T) {
	eventName := "Fest"
	store := services.NewStaticContentServiceFrom(&models.Content{
		ArtistInfo: models.ArtistInfo{ArtistName: "Night Howl"},
		Releases: []models.Release{
			{
				BaseModel: models.BaseModel{ID: 10},
				Title:     "First",
				ImageURL:  "/a.jpg",
				Links:     []models.ReleaseLink{{Platform: models.PlatformSpotify, URL: "https://s"}},
			},
		},
		Shows: []models.Show{
			{BaseModel: models.BaseModel{ID: 5}, Date: models.NewDate(2025, 3, 1), Venue: "The Cave", City: "Austin", EventName: &eventName},
		},
	})

	dir := t.TempDir()
	job := NewContentExportJob(store, dir, Daily)
	job.now = func() time.Time { return time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC) }

	assert.Equal(t, "DailyContentExport", job.Name())
	assert.Equal(t, filepath.Join(dir, "content-20250301.json"), job.Path())
	require.NoError(t, job.Execute(context.Background()))

	file, err := content.Load(job.Path())
	require.NoError(t, err)
	assert.Equal(t, "Night Howl", file.ArtistName)
	require.Len(t, file.Releases, 1)
	assert.Equal(t, "10", file.Releases[0].ID)
	require.Len(t, file.Shows, 1)
	assert.Equal(t, "2025-03-01", file.Shows[0].Date)
	assert.Equal(t, "Fest", file.Shows[0].EventName)
}

func TestSessionSweepJob(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemorySessionStore()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, &services.Session{ID: "old", ExpiresAt: now.Add(-time.Minute)}, time.Hour))
	require.NoError(t, store.Save(ctx, &services.Session{ID: "live", ExpiresAt: now.Add(time.Hour)}, time.Hour))

	job := NewSessionSweepJob(store, Hourly)
	job.now = func() time.Time { return now }

	require.NoError(t, job.Execute(ctx))
	assert.Equal(t, 1, store.Len())

	session, err := store.Get(ctx, "live")
	require.NoError(t, err)
	assert.NotNil(t, session)
}

func TestRegisterAllJobs(t *testing.T) {
	store := services.NewStaticContentServiceFrom(&models.Content{})
	service := services.Service{
		Content:  store,
		Sessions: services.NewSessionService(services.NewMemorySessionStore(), "key", time.Hour),
	}

	scheduler := services.NewSchedulerService()
	require.NoError(t, RegisterAllJobs(scheduler, config.Config{}, service))
	assert.Equal(t, 1, scheduler.GetJobCount(), "only the sweep job without an export dir")

	scheduler = services.NewSchedulerService()
	require.NoError(t, RegisterAllJobs(scheduler, config.Config{ExportDir: t.TempDir()}, service))
	assert.Equal(t, 2, scheduler.GetJobCount())
}
