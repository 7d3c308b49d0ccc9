package models

import (
	"gorm.io/gorm"
)

type Platform string

const (
	PlatformSpotify    Platform = "spotify"
	PlatformApple      Platform = "apple"
	PlatformSoundcloud Platform = "soundcloud"
	PlatformYoutube    Platform = "youtube"
	PlatformBeatport   Platform = "beatport"
)

// Platforms lists every supported link platform in form order.
var Platforms = []Platform{
	PlatformSpotify,
	PlatformApple,
	PlatformSoundcloud,
	PlatformYoutube,
	PlatformBeatport,
}

var platformLabels = map[Platform]string{
	PlatformSpotify:    "Spotify",
	PlatformApple:      "Apple Music",
	PlatformSoundcloud: "SoundCloud",
	PlatformYoutube:    "YouTube",
	PlatformBeatport:   "Beatport",
}

func (p Platform) Valid() bool {
	_, ok := platformLabels[p]
	return ok
}

func (p Platform) Label() string {
	if label, ok := platformLabels[p]; ok {
		return label
	}
	return string(p)
}

type Release struct {
	BaseModel
	Title    string        `gorm:"type:text;not null" json:"title"`
	ImageURL string        `gorm:"type:text"          json:"imageUrl"`
	Links    []ReleaseLink `gorm:"foreignKey:ReleaseID;constraint:OnDelete:CASCADE" json:"links"`
	FileID   string        `gorm:"-"                 json:"-"`
}

func (r *Release) BeforeCreate(tx *gorm.DB) (err error) {
	if r.Title == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}

// ReleaseLink points a release at one streaming or store platform. Its
// lifetime is owned by the release.
type ReleaseLink struct {
	BaseModel
	ReleaseID int64    `gorm:"not null;index:idx_release_links_release" json:"releaseId"`
	Platform  Platform `gorm:"type:text;not null"                       json:"platform"`
	URL       string   `gorm:"type:text"                                json:"url"`
}

func (l *ReleaseLink) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ReleaseID == 0 {
		return gorm.ErrInvalidValue
	}
	return nil
}
