package qtickets

import (
	"encoding/json"
	"time"
)

// Raw payload shapes for the Qtickets REST API. Every field is optional:
// the provider omits, nulls, and occasionally reshapes fields between
// records, so absence must never be an error here. All fallback logic
// lives in normalize.go.

type RawEvent struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CityID       int       `json:"city_id"`
	PlaceName    string    `json:"place_name"`
	PlaceAddress string    `json:"place_address"`
	Poster       *RawMedia `json:"poster"`
	Image        *RawMedia `json:"image"`
	Banner       string    `json:"banner"`
	Age          string    `json:"age"`
	IsActive     bool      `json:"is_active"`
	CurrencyID   string    `json:"currency_id"`
	SiteURL      string    `json:"site_url"`
	Shows        []RawShow `json:"shows"`
}

type RawShow struct {
	ID        int64      `json:"id"`
	StartDate *time.Time `json:"start_date"`
	OpenDate  *time.Time `json:"open_date"`
	IsActive  bool       `json:"is_active"`
	Prices    []RawPrice `json:"prices"`
}

type RawPrice struct {
	DefaultPrice float64 `json:"default_price"`
}

// RawMedia tolerates the two shapes the provider uses for images: a bare
// URL string or an object carrying a "url" field.
type RawMedia struct {
	URL string `json:"url"`
}

func (m *RawMedia) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.URL = s
		return nil
	}
	type alias RawMedia
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	m.URL = a.URL
	return nil
}
