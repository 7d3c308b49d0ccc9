package models

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/datatypes"
)

// Content is the full snapshot a page renders from: artist info plus every
// release and show, already in display order.
type Content struct {
	ArtistInfo ArtistInfo `json:"artistInfo"`
	Releases   []Release  `json:"releases"`
	Shows      []Show     `json:"shows"`
}

// Clone returns a deep copy so a held snapshot never shares slices with a
// caller that might append to or edit them.
func (c *Content) Clone() *Content {
	if c == nil {
		return nil
	}

	clone := &Content{
		ArtistInfo: c.ArtistInfo,
		Releases:   make([]Release, len(c.Releases)),
		Shows:      make([]Show, len(c.Shows)),
	}

	for i, release := range c.Releases {
		release.Links = append([]ReleaseLink(nil), release.Links...)
		clone.Releases[i] = release
	}

	for i, show := range c.Shows {
		if show.EventName != nil {
			eventName := *show.EventName
			show.EventName = &eventName
		}
		clone.Shows[i] = show
	}

	return clone
}

// ContentFile is the bundled static content document. The download
// affordance in the admin panel writes this exact shape back out.
type ContentFile struct {
	ArtistName         string        `json:"artistName"`
	LogoURL            string        `json:"logoUrl"`
	HeroImage          string        `json:"heroImage"`
	SoundcloudEmbedURL string        `json:"soundcloudEmbedUrl"`
	Socials            Socials       `json:"socials"`
	Releases           []FileRelease `json:"releases"`
	Shows              []FileShow    `json:"shows"`
}

type FileRelease struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	ImageURL string     `json:"imageUrl"`
	Links    []FileLink `json:"links"`
}

type FileLink struct {
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
}

type FileShow struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Venue     string `json:"venue"`
	City      string `json:"city"`
	EventName string `json:"eventName,omitempty"`
	TicketURL string `json:"ticketUrl"`
}

// ToContent validates the document and converts it into a snapshot. Release
// order is kept as-is; link ids are assigned sequentially because the file
// does not carry them. File ids may be any non-empty string: positive
// numeric ids are used as they are, any other id gets a fresh numeric id and
// is kept in FileID so the export writes it back unchanged.
func (f ContentFile) ToContent() (*Content, error) {
	content := &Content{
		ArtistInfo: ArtistInfo{
			BaseModel:          BaseModel{ID: 1},
			ArtistName:         f.ArtistName,
			LogoURL:            f.LogoURL,
			HeroImage:          f.HeroImage,
			SoundcloudEmbedURL: f.SoundcloudEmbedURL,
			Socials:            datatypes.NewJSONType(f.Socials),
		},
		Releases: make([]Release, 0, len(f.Releases)),
		Shows:    make([]Show, 0, len(f.Shows)),
	}

	ids, err := f.assignIDs()
	if err != nil {
		return nil, err
	}

	var linkID int64
	for i, fileRelease := range f.Releases {
		id := ids.releases[i]
		release := Release{
			BaseModel: BaseModel{ID: id},
			FileID:    fileRelease.ID,
			Title:     fileRelease.Title,
			ImageURL:  fileRelease.ImageURL,
			Links:     make([]ReleaseLink, 0, len(fileRelease.Links)),
		}
		for _, fileLink := range fileRelease.Links {
			linkID++
			release.Links = append(release.Links, ReleaseLink{
				BaseModel: BaseModel{ID: linkID},
				ReleaseID: id,
				Platform:  fileLink.Platform,
				URL:       fileLink.URL,
			})
		}
		content.Releases = append(content.Releases, release)
	}

	for i, fileShow := range f.Shows {
		date, err := ParseDate(fileShow.Date)
		if err != nil {
			return nil, fmt.Errorf("show %d: %w", i, err)
		}

		show := Show{
			BaseModel: BaseModel{ID: ids.shows[i]},
			FileID:    fileShow.ID,
			Date:      date,
			Venue:     fileShow.Venue,
			City:      fileShow.City,
			TicketURL: fileShow.TicketURL,
		}
		if fileShow.EventName != "" {
			eventName := fileShow.EventName
			show.EventName = &eventName
		}
		content.Shows = append(content.Shows, show)
	}

	return content, nil
}

// NewContentFile serializes a snapshot back into the static document shape.
func NewContentFile(content *Content) *ContentFile {
	file := &ContentFile{
		ArtistName:         content.ArtistInfo.ArtistName,
		LogoURL:            content.ArtistInfo.LogoURL,
		HeroImage:          content.ArtistInfo.HeroImage,
		SoundcloudEmbedURL: content.ArtistInfo.SoundcloudEmbedURL,
		Socials:            content.ArtistInfo.Socials.Data(),
		Releases:           make([]FileRelease, 0, len(content.Releases)),
		Shows:              make([]FileShow, 0, len(content.Shows)),
	}

	for _, release := range content.Releases {
		fileRelease := FileRelease{
			ID:       fileID(release.FileID, release.ID),
			Title:    release.Title,
			ImageURL: release.ImageURL,
			Links:    make([]FileLink, 0, len(release.Links)),
		}
		for _, link := range release.Links {
			fileRelease.Links = append(fileRelease.Links, FileLink{
				Platform: link.Platform,
				URL:      link.URL,
			})
		}
		file.Releases = append(file.Releases, fileRelease)
	}

	for _, show := range content.Shows {
		fileShow := FileShow{
			ID:        fileID(show.FileID, show.ID),
			Date:      show.Date.String(),
			Venue:     show.Venue,
			City:      show.City,
			TicketURL: show.TicketURL,
		}
		if show.EventName != nil {
			fileShow.EventName = *show.EventName
		}
		file.Shows = append(file.Shows, fileShow)
	}

	return file
}

type fileIDs struct {
	releases []int64
	shows    []int64
}

// assignIDs maps every file id to a numeric id that is unique across
// releases and shows. A numeric id is kept unless an earlier entry took it.
func (f ContentFile) assignIDs() (fileIDs, error) {
	raw := make([]string, 0, len(f.Releases)+len(f.Shows))
	for i, release := range f.Releases {
		if strings.TrimSpace(release.ID) == "" {
			return fileIDs{}, fmt.Errorf("release %d: missing id", i)
		}
		raw = append(raw, release.ID)
	}
	for i, show := range f.Shows {
		if strings.TrimSpace(show.ID) == "" {
			return fileIDs{}, fmt.Errorf("show %d: missing id", i)
		}
		raw = append(raw, show.ID)
	}

	assigned := make([]int64, len(raw))
	taken := make(map[int64]bool, len(raw))
	var highest int64
	for i, id := range raw {
		numeric, err := strconv.ParseInt(id, 10, 64)
		if err != nil || numeric <= 0 || taken[numeric] {
			continue
		}
		assigned[i] = numeric
		taken[numeric] = true
		highest = max(highest, numeric)
	}
	for i := range assigned {
		if assigned[i] == 0 {
			highest++
			assigned[i] = highest
		}
	}

	return fileIDs{
		releases: assigned[:len(f.Releases)],
		shows:    assigned[len(f.Releases):],
	}, nil
}

func fileID(original string, id int64) string {
	if original != "" {
		return original
	}
	return strconv.FormatInt(id, 10)
}
