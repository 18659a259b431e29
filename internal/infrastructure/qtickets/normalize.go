package qtickets

import (
	"fmt"
	"strings"

	"github.com/novodsign/neovision-landing/internal/domain/events"
)

const shortDescriptionLen = 200

// cityNames maps Qtickets city ids to display names for events whose
// title carries no city suffix.
var cityNames = map[int]string{
	1:  "Москва",
	2:  "Московская область",
	3:  "Санкт-Петербург",
	4:  "Краснодар",
	5:  "Сочи",
	6:  "Новосибирск",
	7:  "Екатеринбург",
	8:  "Нижний Новгород",
	9:  "Казань",
	10: "Челябинск",
	11: "Самара",
	12: "Уфа",
	13: "Ростов-на-Дону",
	14: "Красноярск",
	15: "Пермь",
	16: "Воронеж",
	17: "Волгоград",
	18: "Саратов",
	19: "Омск",
	20: "Тюмень",
}

// Normalize converts one raw provider record into the canonical event
// shape. It is pure and total: missing fields degrade to empty values, a
// malformed record never takes the rest of the page down with it.
func Normalize(raw RawEvent) events.Event {
	shows := make([]events.Show, 0, len(raw.Shows))
	for _, rs := range raw.Shows {
		shows = append(shows, normalizeShow(raw, rs))
	}

	e := events.Event{
		ID:               raw.ID,
		Slug:             fmt.Sprintf("event-%d", raw.ID),
		Title:            raw.Name,
		Description:      raw.Description,
		ShortDescription: truncateRunes(raw.Description, shortDescriptionLen),
		City:             extractCity(raw),
		Venue:            raw.PlaceName,
		Address:          raw.PlaceAddress,
		PosterURL:        mediaURL(raw.Poster, raw.Image),
		BannerURL:        raw.Banner,
		AgeRestriction:   raw.Age,
		Status:           eventStatus(raw.IsActive),
		IsFeatured:       false,
		Shows:            shows,
		TicketURL:        eventTicketURL(raw),
		Lineup:           []string{},
	}
	e.RecomputeNextShow()
	return e
}

// NormalizeAll maps a raw page-walk result into canonical events,
// preserving provider order.
func NormalizeAll(raws []RawEvent) []events.Event {
	out := make([]events.Event, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}

func normalizeShow(raw RawEvent, rs RawShow) events.Show {
	date := rs.StartDate
	if date == nil {
		date = rs.OpenDate
	}

	minPrice := minPositivePrice(rs.Prices)

	currency := raw.CurrencyID
	if currency == "" {
		currency = "RUB"
	}

	return events.Show{
		ID:        rs.ID,
		Date:      date,
		DoorsOpen: rs.OpenDate,
		StartTime: rs.StartDate,
		MinPrice:  minPrice,
		// The upstream integration fills maxPrice with the same minimum;
		// preserved until product confirms the intended semantics.
		MaxPrice:  minPrice,
		Currency:  currency,
		Status:    showStatus(rs.IsActive),
		TicketURL: fmt.Sprintf("https://qtickets.ru/event/%d/show/%d", raw.ID, rs.ID),
	}
}

// minPositivePrice takes the minimum of the strictly positive listed
// prices. Nil when nothing positive is listed.
func minPositivePrice(prices []RawPrice) *float64 {
	var min *float64
	for _, p := range prices {
		if p.DefaultPrice <= 0 {
			continue
		}
		if min == nil || p.DefaultPrice < *min {
			v := p.DefaultPrice
			min = &v
		}
	}
	return min
}

// extractCity resolves the event city through a fallback chain: the
// trailing "|"-delimited segment of the title (the label names events like
// "VSN7 + Asenssia | Санкт-Петербург"), then the city-id table, then the
// first comma segment of the venue name, then empty.
func extractCity(raw RawEvent) string {
	if parts := strings.Split(raw.Name, "|"); len(parts) > 1 {
		return strings.TrimSpace(parts[len(parts)-1])
	}
	if name, ok := cityNames[raw.CityID]; ok {
		return name
	}
	if raw.PlaceName != "" {
		return strings.SplitN(raw.PlaceName, ",", 2)[0]
	}
	return ""
}

// mediaURL picks the first media reference carrying a URL. The provider
// populates poster for some events and only image for others.
func mediaURL(candidates ...*RawMedia) string {
	for _, m := range candidates {
		if m != nil && m.URL != "" {
			return m.URL
		}
	}
	return ""
}

func eventTicketURL(raw RawEvent) string {
	if raw.SiteURL != "" {
		return raw.SiteURL
	}
	return fmt.Sprintf("https://qtickets.ru/event/%d", raw.ID)
}

func eventStatus(active bool) events.EventStatus {
	if active {
		return events.EventPublished
	}
	return events.EventDraft
}

func showStatus(active bool) events.ShowStatus {
	if active {
		return events.ShowOnSale
	}
	return events.ShowSoldOut
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
