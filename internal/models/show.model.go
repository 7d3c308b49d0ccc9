package models

import (
	"sort"
	"time"

	"gorm.io/gorm"
)

type Show struct {
	BaseModel
	Date      Date    `gorm:"not null;index:idx_shows_date" json:"date"`
	Venue     string  `gorm:"type:text;not null"            json:"venue"`
	City      string  `gorm:"type:text;not null"            json:"city"`
	EventName *string `gorm:"type:text"                     json:"eventName,omitempty"`
	TicketURL string  `gorm:"type:text"                     json:"ticketUrl"`
	FileID    string  `gorm:"-"                             json:"-"`
}

func (s *Show) BeforeCreate(tx *gorm.DB) (err error) {
	if s.Date.IsZero() || s.Venue == "" || s.City == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}

// SortShowsByDate orders shows ascending by date, keeping the relative order
// of shows on the same day.
func SortShowsByDate(shows []Show) {
	sort.SliceStable(shows, func(i, j int) bool {
		return shows[i].Date.Before(shows[j].Date)
	})
}

// UpcomingShows returns the shows dated on or after now's calendar day.
func UpcomingShows(shows []Show, now time.Time) []Show {
	today := DateOf(now)
	upcoming := make([]Show, 0, len(shows))
	for _, show := range shows {
		if !show.Date.Before(today) {
			upcoming = append(upcoming, show)
		}
	}
	return upcoming
}
