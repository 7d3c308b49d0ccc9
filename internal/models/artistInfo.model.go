package models

import (
	"gorm.io/datatypes"
)

// Socials maps a social platform to the artist's profile URL. Every field
// is optional; empty entries are not rendered.
type Socials struct {
	Instagram  string `json:"instagram"`
	Twitter    string `json:"twitter"`
	Facebook   string `json:"facebook"`
	Spotify    string `json:"spotify"`
	Soundcloud string `json:"soundcloud"`
}

type SocialLink struct {
	Label string
	URL   string
}

// Links returns the non-empty social links in footer order.
func (s Socials) Links() []SocialLink {
	candidates := []SocialLink{
		{Label: "Instagram", URL: s.Instagram},
		{Label: "Twitter", URL: s.Twitter},
		{Label: "Facebook", URL: s.Facebook},
		{Label: "Spotify", URL: s.Spotify},
		{Label: "SoundCloud", URL: s.Soundcloud},
	}

	links := make([]SocialLink, 0, len(candidates))
	for _, link := range candidates {
		if link.URL != "" {
			links = append(links, link)
		}
	}
	return links
}

type ArtistInfo struct {
	BaseModel
	ArtistName         string                     `gorm:"type:text;not null" json:"artistName"`
	LogoURL            string                     `gorm:"type:text"          json:"logoUrl"`
	HeroImage          string                     `gorm:"type:text"          json:"heroImage"`
	SoundcloudEmbedURL string                     `gorm:"type:text"          json:"soundcloudEmbedUrl"`
	Socials            datatypes.JSONType[Socials] `                          json:"socials"`
}

func (ArtistInfo) TableName() string {
	return "artist_info"
}

// DisplayName falls back to a placeholder when the artist name is unset.
func (a ArtistInfo) DisplayName() string {
	if a.ArtistName == "" {
		return "Artist Name"
	}
	return a.ArtistName
}
