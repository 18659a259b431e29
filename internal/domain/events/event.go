package events

import (
	"strconv"
	"time"
)

type EventStatus string

const (
	EventPublished EventStatus = "PUBLISHED"
	EventDraft     EventStatus = "DRAFT"
)

type ShowStatus string

const (
	ShowOnSale  ShowStatus = "ON_SALE"
	ShowSoldOut ShowStatus = "SOLD_OUT"
)

// Event is the canonical event shape served to the site. It is always
// derived from a fresh provider snapshot and never persisted.
type Event struct {
	ID               int64       `json:"id"`
	Slug             string      `json:"slug"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	ShortDescription string      `json:"shortDescription"`
	City             string      `json:"city"`
	Venue            string      `json:"venue"`
	Address          string      `json:"address"`
	PosterURL        string      `json:"posterUrl,omitempty"`
	BannerURL        string      `json:"bannerUrl,omitempty"`
	AgeRestriction   string      `json:"ageRestriction,omitempty"`
	Status           EventStatus `json:"status"`
	IsFeatured       bool        `json:"isFeatured"`
	Shows            []Show      `json:"shows"`
	NextShow         *NextShow   `json:"nextShow"`
	TicketURL        string      `json:"ticketUrl"`
	Lineup           []string    `json:"lineup"`
}

type Show struct {
	ID        int64      `json:"id"`
	Date      *time.Time `json:"date"`
	DoorsOpen *time.Time `json:"doorsOpen"`
	StartTime *time.Time `json:"startTime"`
	MinPrice  *float64   `json:"minPrice"`
	MaxPrice  *float64   `json:"maxPrice"`
	Currency  string     `json:"currency"`
	Status    ShowStatus `json:"status"`
	TicketURL string     `json:"ticketUrl"`
}

// NextShow is a denormalized view of Shows[0] kept for the landing page.
// It is recomputed whenever Shows changes, never edited on its own.
type NextShow struct {
	Date      *time.Time `json:"date"`
	MinPrice  *float64   `json:"minPrice"`
	TicketURL string     `json:"ticketUrl"`
}

// RecomputeNextShow refreshes the NextShow view from Shows[0].
func (e *Event) RecomputeNextShow() {
	if len(e.Shows) == 0 {
		e.NextShow = nil
		return
	}
	first := e.Shows[0]
	e.NextShow = &NextShow{
		Date:      first.Date,
		MinPrice:  first.MinPrice,
		TicketURL: first.TicketURL,
	}
}

// Date returns the event's primary instant: the first show's date, falling
// back to the NextShow view. Nil when the event has no derivable date.
func (e Event) Date() *time.Time {
	if len(e.Shows) > 0 && e.Shows[0].Date != nil {
		return e.Shows[0].Date
	}
	if e.NextShow != nil && e.NextShow.Date != nil {
		return e.NextShow.Date
	}
	return nil
}

// HasUpcomingShow reports whether any show starts after now.
func (e Event) HasUpcomingShow(now time.Time) bool {
	for _, s := range e.Shows {
		if s.Date != nil && s.Date.After(now) {
			return true
		}
	}
	return false
}

// IDString returns the provider id in the form used for URLs and the
// slug id fragment.
func (e Event) IDString() string {
	return strconv.FormatInt(e.ID, 10)
}
