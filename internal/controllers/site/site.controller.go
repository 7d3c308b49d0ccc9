package siteController

import (
	"artistsite/config"
	"artistsite/internal/models"
	"artistsite/internal/services"
	"artistsite/internal/types"
	"context"
	"time"
)

type SiteControllerInterface interface {
	GetPage(ctx context.Context, mode types.ViewMode) (*Page, error)
	GetContent(ctx context.Context) (*models.Content, error)
}

type SiteController struct {
	site         *services.SiteState
	upcomingOnly bool
	now          func() time.Time
}

// Page is the view model for the public page. Shows holds what visitors
// see; the admin panel reads the unfiltered list from the snapshot.
type Page struct {
	Mode       types.ViewMode
	Artist     models.ArtistInfo
	ArtistName string
	Socials    []models.SocialLink
	Releases   []models.Release
	Shows      []models.Show
	Content    *models.Content
}

func New(service services.Service, cfg config.Config) SiteControllerInterface {
	return NewSiteController(service.Site, cfg.ShowsUpcomingOnly)
}

func NewSiteController(site *services.SiteState, upcomingOnly bool) *SiteController {
	return &SiteController{
		site:         site,
		upcomingOnly: upcomingOnly,
		now:          time.Now,
	}
}

func (c *SiteController) GetPage(ctx context.Context, mode types.ViewMode) (*Page, error) {
	content, err := c.site.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	shows := content.Shows
	if c.upcomingOnly {
		shows = models.UpcomingShows(shows, c.now())
	}

	return &Page{
		Mode:       mode,
		Artist:     content.ArtistInfo,
		ArtistName: content.ArtistInfo.DisplayName(),
		Socials:    content.ArtistInfo.Socials.Data().Links(),
		Releases:   content.Releases,
		Shows:      shows,
		Content:    content,
	}, nil
}

// GetContent returns the full snapshot, unfiltered.
func (c *SiteController) GetContent(ctx context.Context) (*models.Content, error) {
	return c.site.Snapshot(ctx)
}
