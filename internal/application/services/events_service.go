package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/novodsign/neovision-landing/internal/domain/events"
	"github.com/novodsign/neovision-landing/internal/infrastructure/qtickets"
	"github.com/novodsign/neovision-landing/internal/observability"
)

// ErrEventNotFound is returned when neither slug resolution nor a detail
// lookup can produce an event. Handlers map it to the archive fallback.
var ErrEventNotFound = errors.New("event not found")

type EventsProvider interface {
	FetchAllEvents(ctx context.Context) ([]qtickets.RawEvent, error)
	GetEvent(ctx context.Context, id string) (*qtickets.RawEvent, error)
}

type ArchiveFilter string

const (
	FilterAll      ArchiveFilter = "all"
	FilterUpcoming ArchiveFilter = "upcoming"
	FilterPast     ArchiveFilter = "past"
)

type ArchivePage struct {
	Events  []events.Event
	Total   int
	Page    int
	PerPage int

	// SameDateCounts is the full-set date-key histogram, computed before
	// any filtering so share links built from a page stay collision-safe.
	SameDateCounts map[string]int
}

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// EventsService materializes the provider's event set per request and
// derives everything the site needs from that one snapshot. Nothing is
// kept between calls; the provider stays the single source of truth.
type EventsService struct {
	provider EventsProvider
	log      zerolog.Logger
	now      func() time.Time
}

func NewEventsService(provider EventsProvider, log zerolog.Logger) *EventsService {
	return &EventsService{
		provider: provider,
		log:      log,
		now:      time.Now,
	}
}

// List fetches and normalizes the full event set. A page-fetch failure is
// terminal: an incomplete set would silently corrupt the same-date
// histogram slug disambiguation depends on, so there is no partial result.
func (s *EventsService) List(ctx context.Context) ([]events.Event, error) {
	raws, err := s.provider.FetchAllEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregating events: %w", err)
	}
	return qtickets.NormalizeAll(raws), nil
}

// Upcoming returns up to limit events with a future show, soonest first,
// plus the full-set date histogram for building share links. When nothing
// upcoming exists the most recent past events are served instead so the
// landing page never goes empty.
func (s *EventsService) Upcoming(ctx context.Context, limit int) ([]events.Event, map[string]int, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = 4
	}

	counts := events.CountByDate(all)

	now := s.now()
	var upcoming []events.Event
	for _, e := range all {
		if e.HasUpcomingShow(now) {
			upcoming = append(upcoming, e)
		}
	}

	if len(upcoming) == 0 {
		sortByDate(all, false)
		return clamp(all, limit), counts, nil
	}

	sortByDate(upcoming, true)
	return clamp(upcoming, limit), counts, nil
}

// Archive sorts, filters and paginates the full set for the listing view.
func (s *EventsService) Archive(ctx context.Context, filter ArchiveFilter, page, perPage int) (*ArchivePage, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	counts := events.CountByDate(all)

	now := s.now()
	var filtered []events.Event
	switch filter {
	case FilterUpcoming:
		for _, e := range all {
			if e.HasUpcomingShow(now) {
				filtered = append(filtered, e)
			}
		}
		sortByDate(filtered, true)
	case FilterPast:
		for _, e := range all {
			if !e.HasUpcomingShow(now) {
				filtered = append(filtered, e)
			}
		}
		sortByDate(filtered, false)
	default:
		filtered = all
		sortByDate(filtered, true)
	}

	total := len(filtered)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return &ArchivePage{
		Events:         filtered[start:end],
		Total:          total,
		Page:           page,
		PerPage:        perPage,
		SameDateCounts: counts,
	}, nil
}

// ResolveSlug maps a short URL slug to an event using a fresh snapshot. A
// fetch failure propagates as an error and is never treated as an empty
// event set.
func (s *EventsService) ResolveSlug(ctx context.Context, slug string) (*events.Event, error) {
	all, err := s.List(ctx)
	if err != nil {
		observability.SlugResolutions.WithLabelValues("fetch_failed").Inc()
		return nil, err
	}

	if match := events.Resolve(slug, all); match != nil {
		observability.SlugResolutions.WithLabelValues("resolved").Inc()
		return match, nil
	}

	observability.SlugResolutions.WithLabelValues("not_found").Inc()
	s.log.Info().Str("slug", slug).Msg("short slug did not resolve")
	return nil, ErrEventNotFound
}

// Get fetches one event by raw provider id or canonical "event-{id}" slug.
func (s *EventsService) Get(ctx context.Context, idOrSlug string) (*events.Event, error) {
	id := strings.TrimPrefix(idOrSlug, "event-")

	raw, err := s.provider.GetEvent(ctx, id)
	if err != nil {
		var pe *qtickets.ProviderError
		if errors.As(err, &pe) && pe.StatusCode == http.StatusNotFound {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("fetching event %s: %w", id, err)
	}

	e := qtickets.Normalize(*raw)
	return &e, nil
}

func sortByDate(list []events.Event, ascending bool) {
	sort.SliceStable(list, func(i, j int) bool {
		di, dj := eventSortTime(list[i]), eventSortTime(list[j])
		if ascending {
			return di.Before(dj)
		}
		return di.After(dj)
	})
}

func eventSortTime(e events.Event) time.Time {
	if d := e.Date(); d != nil {
		return *d
	}
	return time.Unix(0, 0)
}

func clamp(list []events.Event, limit int) []events.Event {
	if len(list) > limit {
		return list[:limit]
	}
	return list
}
