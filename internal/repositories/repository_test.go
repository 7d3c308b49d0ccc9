package repositories_test

import (
	contextutil "artistsite/internal/context"
	"artistsite/internal/database"
	"artistsite/internal/models"
	"artistsite/internal/repositories"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func setupRepository(t *testing.T) (repositories.Repository, database.DB) {
	t.Helper()

	sqlDB, err := database.OpenSQLite("file::memory:", nil)
	require.NoError(t, err)

	db := database.DB{SQL: sqlDB}
	require.NoError(t, db.MigrateModels())

	t.Cleanup(func() {
		if conn, err := sqlDB.DB(); err == nil {
			conn.Close()
		}
	})

	return repositories.New(db), db
}

func createRelease(t *testing.T, repo repositories.Repository, title string, urls ...string) *models.Release {
	t.Helper()
	ctx := context.Background()

	release := &models.Release{Title: title, ImageURL: "/img/" + title + ".jpg"}
	require.NoError(t, repo.Release.Create(ctx, release))

	links := make([]*models.ReleaseLink, 0, len(urls))
	for _, url := range urls {
		links = append(links, &models.ReleaseLink{
			ReleaseID: release.ID,
			Platform:  models.PlatformSpotify,
			URL:       url,
		})
	}
	require.NoError(t, repo.ReleaseLink.Create(ctx, links))

	return release
}

func TestArtistInfoRepository(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	info, err := repo.ArtistInfo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Artist Name", info.DisplayName(), "missing row yields placeholders")

	require.NoError(t, repo.ArtistInfo.Upsert(ctx, &models.ArtistInfo{
		ArtistName: "Night Howl",
		Socials:    datatypes.NewJSONType(models.Socials{Instagram: "https://i"}),
	}))
	require.NoError(t, repo.ArtistInfo.Upsert(ctx, &models.ArtistInfo{
		BaseModel:  models.BaseModel{ID: 1},
		ArtistName: "Night Howl II",
		Socials:    datatypes.NewJSONType(models.Socials{Instagram: "https://i2"}),
	}))

	info, err = repo.ArtistInfo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Night Howl II", info.ArtistName)
	assert.Equal(t, "https://i2", info.Socials.Data().Instagram)
}

func TestReleaseRepository_GetAllOrdering(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	first := createRelease(t, repo, "first", "https://a", "https://b")
	second := createRelease(t, repo, "second")

	releases, err := repo.Release.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, releases, 2)

	assert.Equal(t, second.ID, releases[0].ID, "newest release first")
	assert.Empty(t, releases[0].Links)
	require.Len(t, releases[1].Links, 2)
	assert.Equal(t, first.ID, releases[1].ID)
	assert.Less(t, releases[1].Links[0].ID, releases[1].Links[1].ID)
	assert.Equal(t, "https://a", releases[1].Links[0].URL)
}

func TestReleaseRepository_UpdateAndDeleteMissing(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	updated, err := repo.Release.UpdateFields(ctx, 404, "nope", "")
	require.NoError(t, err)
	assert.Nil(t, updated)

	rows, err := repo.Release.Delete(ctx, 404)
	require.NoError(t, err)
	assert.Zero(t, rows)

	release := createRelease(t, repo, "keep")
	updated, err = repo.Release.UpdateFields(ctx, release.ID, "renamed", "/img/new.jpg")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "/img/new.jpg", updated.ImageURL)
}

func TestReleaseLinkRepository_Reconcile(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	release := createRelease(t, repo, "album", "https://a", "https://b")
	links, err := repo.ReleaseLink.GetByReleaseID(ctx, release.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	linkA, linkB := links[0], links[1]

	kept := &models.ReleaseLink{
		BaseModel: models.BaseModel{ID: linkA.ID},
		ReleaseID: release.ID,
		Platform:  models.PlatformApple,
		URL:       "https://a2",
	}
	require.NoError(t, repo.ReleaseLink.Upsert(ctx, []*models.ReleaseLink{kept}))

	added := &models.ReleaseLink{ReleaseID: release.ID, Platform: models.PlatformBeatport, URL: "https://c"}
	require.NoError(t, repo.ReleaseLink.Create(ctx, []*models.ReleaseLink{added}))
	require.NotZero(t, added.ID)

	removed, err := repo.ReleaseLink.DeleteExcept(ctx, release.ID, []int64{linkA.ID, added.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	links, err = repo.ReleaseLink.GetByReleaseID(ctx, release.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, linkA.ID, links[0].ID, "existing link keeps its id")
	assert.Equal(t, models.PlatformApple, links[0].Platform)
	assert.Equal(t, "https://a2", links[0].URL)
	assert.Equal(t, added.ID, links[1].ID)
	for _, link := range links {
		assert.NotEqual(t, linkB.ID, link.ID)
	}
}

func TestReleaseLinkRepository_UpsertKeepsOwningRelease(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	owner := createRelease(t, repo, "owner", "https://owner")
	other := createRelease(t, repo, "other")
	links, err := repo.ReleaseLink.GetByReleaseID(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)

	moved := &models.ReleaseLink{
		BaseModel: models.BaseModel{ID: links[0].ID},
		ReleaseID: other.ID,
		Platform:  models.PlatformYoutube,
		URL:       "https://changed",
	}
	require.NoError(t, repo.ReleaseLink.Upsert(ctx, []*models.ReleaseLink{moved}))

	links, err = repo.ReleaseLink.GetByReleaseID(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "https://changed", links[0].URL)

	links, err = repo.ReleaseLink.GetByReleaseID(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestReleaseLinkRepository_DeleteExceptEmptyRemovesAll(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	release := createRelease(t, repo, "album", "https://a", "https://b")
	other := createRelease(t, repo, "other", "https://z")

	removed, err := repo.ReleaseLink.DeleteExcept(ctx, release.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	links, err := repo.ReleaseLink.GetByReleaseID(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, links, 1, "other releases are untouched")
}

func TestShowRepository(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	eventName := "Spring Fest"
	later := &models.Show{Date: models.NewDate(2025, 6, 1), Venue: "Hall", City: "Austin"}
	earlier := &models.Show{
		Date:      models.NewDate(2025, 3, 1),
		Venue:     "Cave",
		City:      "Dallas",
		EventName: &eventName,
	}
	require.NoError(t, repo.Show.Create(ctx, later))
	require.NoError(t, repo.Show.Create(ctx, earlier))

	shows, err := repo.Show.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, shows, 2)
	assert.Equal(t, earlier.ID, shows[0].ID)
	require.NotNil(t, shows[0].EventName)
	assert.Equal(t, "Spring Fest", *shows[0].EventName)

	earlier.EventName = nil
	earlier.Venue = "Cave Annex"
	stored, err := repo.Show.Update(ctx, earlier)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Nil(t, stored.EventName)
	assert.Equal(t, "Cave Annex", stored.Venue)

	missing, err := repo.Show.Update(ctx, &models.Show{
		BaseModel: models.BaseModel{ID: 999},
		Date:      models.NewDate(2025, 1, 1),
		Venue:     "x",
		City:      "y",
	})
	require.NoError(t, err)
	assert.Nil(t, missing)

	rows, err := repo.Show.Delete(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.Show.Delete(ctx, later.ID)
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestShowRepository_CreateRejectsMissingFields(t *testing.T) {
	repo, _ := setupRepository(t)

	err := repo.Show.Create(context.Background(), &models.Show{Venue: "Cave"})
	assert.Error(t, err)
}

func TestAdminUserRepository(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	user := &models.AdminUser{Email: "  Owner@Example.com ", PasswordHash: "hash"}
	require.NoError(t, repo.AdminUser.Create(ctx, user))
	assert.Equal(t, "owner@example.com", user.Email)

	found, err := repo.AdminUser.GetByEmail(ctx, "OWNER@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	duplicate := &models.AdminUser{Email: "owner@example.com", PasswordHash: "other"}
	assert.Error(t, repo.AdminUser.Create(ctx, duplicate))

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.AdminUser.TouchLastLogin(ctx, user.ID, now))

	found, err = repo.AdminUser.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastLoginAt)
	assert.True(t, found.LastLoginAt.Equal(now))

	missing, err := repo.AdminUser.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepositoriesUseContextTransaction(t *testing.T) {
	repo, db := setupRepository(t)

	tx := db.SQL.Begin()
	require.NoError(t, tx.Error)
	ctx := contextutil.WithTransaction(context.Background(), tx)

	require.NoError(t, repo.Show.Create(ctx, &models.Show{
		Date:  models.NewDate(2025, 3, 1),
		Venue: "Cave",
		City:  "Dallas",
	}))
	require.NoError(t, tx.Rollback().Error)

	shows, err := repo.Show.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, shows)
}
