package services

import (
	"artistsite/internal/models"
	"artistsite/internal/types"
	"artistsite/internal/utils"
	"context"
	"fmt"
	"strings"
)

type StoreVariant string

const (
	StoreRemote StoreVariant = "remote"
	StoreStatic StoreVariant = "static"
)

// ContentStore is the persistence contract shared by the relational and the
// bundled-file backends. Read failures wrap types.ErrLoad and write failures
// wrap types.ErrPersist or types.ErrValidation.
type ContentStore interface {
	Variant() StoreVariant
	LoadAll(ctx context.Context) (*models.Content, error)
	CreateRelease(ctx context.Context, input ReleaseInput) (*models.Release, error)
	UpdateRelease(ctx context.Context, id int64, input ReleaseInput) (*models.Release, error)
	DeleteRelease(ctx context.Context, id int64) error
	CreateShow(ctx context.Context, input ShowInput) (*models.Show, error)
	UpdateShow(ctx context.Context, id int64, input ShowInput) (*models.Show, error)
	DeleteShow(ctx context.Context, id int64) error
}

// LinkReconciler is implemented by stores that keep release links as their
// own rows and need a separate step to bring them in line with a form.
type LinkReconciler interface {
	ReplaceReleaseLinks(ctx context.Context, releaseID int64, links []LinkInput) error
}

// SnapshotExporter is implemented by stores whose content can be handed back
// as a bundled content file.
type SnapshotExporter interface {
	Export(ctx context.Context) (*models.ContentFile, error)
}

type ReleaseInput struct {
	Title    string      `json:"title"`
	ImageURL string      `json:"imageUrl"`
	Links    []LinkInput `json:"links"`
}

// LinkInput is one row of the release form. ID is zero for rows added in
// this edit.
type LinkInput struct {
	ID       int64           `json:"id,omitempty"`
	Platform models.Platform `json:"platform"`
	URL      string          `json:"url"`
}

type ShowInput struct {
	Date      string `json:"date"`
	Venue     string `json:"venue"`
	City      string `json:"city"`
	EventName string `json:"eventName,omitempty"`
	TicketURL string `json:"ticketUrl"`
}

// Normalize trims the scalar fields and checks the required ones.
func (in ReleaseInput) Normalize() (ReleaseInput, error) {
	in.Title = utils.CleanText(in.Title)
	in.ImageURL = utils.CleanText(in.ImageURL)

	if in.Title == "" || in.ImageURL == "" {
		return in, types.Invalid("Title and image URL are required.")
	}

	links, err := NormalizeLinks(in.Links)
	if err != nil {
		return in, err
	}
	in.Links = links

	return in, nil
}

// NormalizeLinks defaults an empty platform to spotify and rejects any
// platform outside the supported set. Empty URLs are kept.
func NormalizeLinks(links []LinkInput) ([]LinkInput, error) {
	normalized := make([]LinkInput, 0, len(links))
	for _, link := range links {
		link.Platform = models.Platform(strings.ToLower(utils.CleanText(string(link.Platform))))
		link.URL = utils.CleanText(link.URL)

		if link.Platform == "" {
			link.Platform = models.PlatformSpotify
		}
		if !link.Platform.Valid() {
			return nil, types.Invalid("Unsupported platform %q.", link.Platform)
		}
		if link.ID < 0 {
			return nil, types.Invalid("Invalid link id.")
		}

		normalized = append(normalized, link)
	}
	return normalized, nil
}

// ToShow validates the input and builds the show it describes.
func (in ShowInput) ToShow() (models.Show, error) {
	venue := utils.CleanText(in.Venue)
	city := utils.CleanText(in.City)
	rawDate := utils.CleanText(in.Date)

	if rawDate == "" || venue == "" || city == "" {
		return models.Show{}, types.Invalid("Date, venue and city are required.")
	}

	date, err := models.ParseDate(rawDate)
	if err != nil {
		return models.Show{}, types.Invalid("Date must be YYYY-MM-DD.")
	}

	show := models.Show{
		Date:      date,
		Venue:     venue,
		City:      city,
		TicketURL: utils.CleanText(in.TicketURL),
	}
	if eventName := utils.CleanText(in.EventName); eventName != "" {
		show.EventName = &eventName
	}

	return show, nil
}

// ReleaseInputFrom builds the form input that edits an existing release.
func ReleaseInputFrom(release models.Release) ReleaseInput {
	input := ReleaseInput{
		Title:    release.Title,
		ImageURL: release.ImageURL,
		Links:    make([]LinkInput, 0, len(release.Links)),
	}
	for _, link := range release.Links {
		input.Links = append(input.Links, LinkInput{
			ID:       link.ID,
			Platform: link.Platform,
			URL:      link.URL,
		})
	}
	return input
}

func ShowInputFrom(show models.Show) ShowInput {
	input := ShowInput{
		Date:      show.Date.String(),
		Venue:     show.Venue,
		City:      show.City,
		TicketURL: show.TicketURL,
	}
	if show.EventName != nil {
		input.EventName = *show.EventName
	}
	return input
}

func persistError(action string, err error) error {
	return fmt.Errorf("%w: %s: %w", types.ErrPersist, action, err)
}

func loadError(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", types.ErrLoad, what, err)
}
