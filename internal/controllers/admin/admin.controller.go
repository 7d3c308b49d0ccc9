package adminController

import (
	"artistsite/internal/models"
	"artistsite/internal/services"
	"artistsite/internal/types"
	"context"
	"fmt"

	logger "github.com/Bparsons0904/goLogger"
)

type AdminControllerInterface interface {
	Panel(ctx context.Context, state PanelState) (*Panel, error)
	SaveShow(ctx context.Context, id int64, input services.ShowInput) (*models.Show, error)
	SaveRelease(ctx context.Context, id int64, input services.ReleaseInput) (*models.Release, error)
	DeleteShow(ctx context.Context, id int64) error
	DeleteRelease(ctx context.Context, id int64) error
	CanExport() bool
	Export(ctx context.Context) (*models.ContentFile, error)
}

type AdminController struct {
	store services.ContentStore
	site  *services.SiteState
	log   logger.Logger
}

// Panel is everything the admin panel renders: every show (not only the
// upcoming ones), every release, and at most one open form.
type Panel struct {
	State       PanelState
	Shows       []models.Show
	Releases    []models.Release
	ShowForm    *ShowForm
	ReleaseForm *ReleaseForm
	CanExport   bool
	Variant     services.StoreVariant
	// Error is shown at the top of the panel for failures outside a form,
	// such as a delete that could not be stored.
	Error string
}

type ShowForm struct {
	State PanelState
	Input services.ShowInput
	Error string
}

type ReleaseForm struct {
	State     PanelState
	Input     services.ReleaseInput
	Platforms []models.Platform
	Error     string
}

func New(service services.Service) AdminControllerInterface {
	return NewAdminController(service.Content, service.Site)
}

func NewAdminController(store services.ContentStore, site *services.SiteState) *AdminController {
	return &AdminController{
		store: store,
		site:  site,
		log:   logger.New("adminController"),
	}
}

func (c *AdminController) Panel(ctx context.Context, state PanelState) (*Panel, error) {
	content, err := c.site.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	panel := &Panel{
		State:     state,
		Shows:     content.Shows,
		Releases:  content.Releases,
		CanExport: c.CanExport(),
		Variant:   c.store.Variant(),
	}

	switch {
	case state.IsEditing(EntityShow):
		form := &ShowForm{State: state}
		if state.Mode == PanelEdit {
			show, ok := findShow(content.Shows, state.ItemID)
			if !ok {
				panel.State = state.Close()
				return panel, nil
			}
			form.Input = services.ShowInputFrom(show)
		}
		panel.ShowForm = form
	case state.IsEditing(EntityRelease):
		form := &ReleaseForm{State: state, Platforms: models.Platforms}
		if state.Mode == PanelEdit {
			release, ok := findRelease(content.Releases, state.ItemID)
			if !ok {
				panel.State = state.Close()
				return panel, nil
			}
			form.Input = services.ReleaseInputFrom(release)
		}
		panel.ReleaseForm = form
	}

	return panel, nil
}

// SaveShow creates the show when id is zero and updates it otherwise. The
// site snapshot is reloaded after a successful write.
func (c *AdminController) SaveShow(
	ctx context.Context,
	id int64,
	input services.ShowInput,
) (*models.Show, error) {
	log := c.log.Function("SaveShow").TraceFromContext(ctx)

	var (
		show *models.Show
		err  error
	)
	if id == 0 {
		show, err = c.store.CreateShow(ctx, input)
	} else {
		show, err = c.store.UpdateShow(ctx, id, input)
	}
	if err != nil {
		return nil, log.Err("failed to save show", err, "id", id)
	}

	c.site.Refresh(ctx)
	return show, nil
}

// SaveRelease writes the scalar fields, then brings the links in line when
// the store keeps them separately. A failed link step does not undo the
// scalar write; the snapshot is reloaded either way so it shows what was
// actually stored.
func (c *AdminController) SaveRelease(
	ctx context.Context,
	id int64,
	input services.ReleaseInput,
) (*models.Release, error) {
	log := c.log.Function("SaveRelease").TraceFromContext(ctx)

	var (
		release *models.Release
		err     error
	)
	if id == 0 {
		release, err = c.store.CreateRelease(ctx, input)
	} else {
		release, err = c.store.UpdateRelease(ctx, id, input)
	}
	if err != nil {
		return nil, log.Err("failed to save release", err, "id", id)
	}

	if reconciler, ok := c.store.(services.LinkReconciler); ok {
		if err := reconciler.ReplaceReleaseLinks(ctx, release.ID, input.Links); err != nil {
			c.site.Refresh(ctx)
			return release, log.Err("release saved but links were not", err, "releaseID", release.ID)
		}
	}

	c.site.Refresh(ctx)
	return release, nil
}

func (c *AdminController) DeleteShow(ctx context.Context, id int64) error {
	log := c.log.Function("DeleteShow").TraceFromContext(ctx)

	if err := c.store.DeleteShow(ctx, id); err != nil {
		return log.Err("failed to delete show", err, "id", id)
	}

	c.site.Refresh(ctx)
	return nil
}

func (c *AdminController) DeleteRelease(ctx context.Context, id int64) error {
	log := c.log.Function("DeleteRelease").TraceFromContext(ctx)

	if err := c.store.DeleteRelease(ctx, id); err != nil {
		return log.Err("failed to delete release", err, "id", id)
	}

	c.site.Refresh(ctx)
	return nil
}

func (c *AdminController) CanExport() bool {
	_, ok := c.store.(services.SnapshotExporter)
	return ok
}

func (c *AdminController) Export(ctx context.Context) (*models.ContentFile, error) {
	exporter, ok := c.store.(services.SnapshotExporter)
	if !ok {
		return nil, fmt.Errorf("%w: export is only available for the static backend", types.ErrNotFound)
	}
	return exporter.Export(ctx)
}

func findShow(shows []models.Show, id int64) (models.Show, bool) {
	for _, show := range shows {
		if show.ID == id {
			return show, true
		}
	}
	return models.Show{}, false
}

func findRelease(releases []models.Release, id int64) (models.Release, bool) {
	for _, release := range releases {
		if release.ID == id {
			return release, true
		}
	}
	return models.Release{}, false
}
