package services

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novodsign/neovision-landing/internal/domain/events"
	"github.com/novodsign/neovision-landing/internal/infrastructure/qtickets"
)

type fakeProvider struct {
	events  []qtickets.RawEvent
	listErr error
	getErr  error
}

func (f *fakeProvider) FetchAllEvents(ctx context.Context) ([]qtickets.RawEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeProvider) GetEvent(ctx context.Context, id string) (*qtickets.RawEvent, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.events {
		if strconv.FormatInt(f.events[i].ID, 10) == id {
			return &f.events[i], nil
		}
	}
	return nil, &qtickets.ProviderError{StatusCode: http.StatusNotFound}
}

func rawEventAt(id int64, dateStr string) qtickets.RawEvent {
	date, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		panic(err)
	}
	return qtickets.RawEvent{
		ID:       id,
		Name:     "VSN7 Showcase",
		IsActive: true,
		Shows: []qtickets.RawShow{{
			ID:        id * 10,
			StartDate: &date,
			IsActive:  true,
		}},
	}
}

func newTestService(provider EventsProvider, now time.Time) *EventsService {
	svc := NewEventsService(provider, zerolog.Nop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestListFetchFailureIsTerminal(t *testing.T) {
	provider := &fakeProvider{listErr: &qtickets.ProviderError{StatusCode: http.StatusBadGateway}}
	svc := newTestService(provider, time.Now())

	all, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Nil(t, all)

	var pe *qtickets.ProviderError
	assert.True(t, errors.As(err, &pe))
}

func TestUpcomingSortsSoonestFirst(t *testing.T) {
	now := time.Date(2024, 12, 20, 12, 0, 0, 0, time.UTC)
	provider := &fakeProvider{events: []qtickets.RawEvent{
		rawEventAt(3, "2024-12-27T19:30:00+03:00"),
		rawEventAt(1, "2024-12-25T19:30:00+03:00"),
		rawEventAt(2, "2024-12-26T19:30:00+03:00"),
		rawEventAt(9, "2024-11-01T19:30:00+03:00"), // already happened
	}}
	svc := newTestService(provider, now)

	upcoming, counts, err := svc.Upcoming(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, upcoming, 3)
	assert.Equal(t, int64(1), upcoming[0].ID)
	assert.Equal(t, int64(2), upcoming[1].ID)
	assert.Equal(t, int64(3), upcoming[2].ID)

	// Histogram covers the full set, past events included.
	assert.Len(t, counts, 4)
	assert.Equal(t, 1, counts["2024-11-01"])
}

func TestUpcomingDefaultLimit(t *testing.T) {
	now := time.Date(2024, 12, 20, 12, 0, 0, 0, time.UTC)
	provider := &fakeProvider{events: []qtickets.RawEvent{
		rawEventAt(1, "2024-12-25T19:30:00+03:00"),
		rawEventAt(2, "2024-12-26T19:30:00+03:00"),
		rawEventAt(3, "2024-12-27T19:30:00+03:00"),
		rawEventAt(4, "2024-12-28T19:30:00+03:00"),
		rawEventAt(5, "2024-12-29T19:30:00+03:00"),
	}}
	svc := newTestService(provider, now)

	upcoming, _, err := svc.Upcoming(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, upcoming, 4)
}

func TestUpcomingFallsBackToMostRecentPast(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	provider := &fakeProvider{events: []qtickets.RawEvent{
		rawEventAt(1, "2024-10-25T19:30:00+03:00"),
		rawEventAt(2, "2024-12-25T19:30:00+03:00"),
		rawEventAt(3, "2024-11-25T19:30:00+03:00"),
	}}
	svc := newTestService(provider, now)

	got, _, err := svc.Upcoming(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestArchiveFilters(t *testing.T) {
	now := time.Date(2024, 12, 20, 12, 0, 0, 0, time.UTC)
	provider := &fakeProvider{events: []qtickets.RawEvent{
		rawEventAt(1, "2024-11-01T19:30:00+03:00"),
		rawEventAt(2, "2024-12-25T19:30:00+03:00"),
		rawEventAt(3, "2024-10-01T19:30:00+03:00"),
	}}
	svc := newTestService(provider, now)

	page, err := svc.Archive(context.Background(), FilterUpcoming, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.Equal(t, int64(2), page.Events[0].ID)
	assert.Equal(t, 1, page.Total)

	page, err = svc.Archive(context.Background(), FilterPast, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Events, 2)
	// Past events come newest first.
	assert.Equal(t, int64(1), page.Events[0].ID)
	assert.Equal(t, int64(3), page.Events[1].ID)

	page, err = svc.Archive(context.Background(), FilterAll, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, int64(3), page.Events[0].ID)
}

func TestArchivePagination(t *testing.T) {
	now := time.Date(2024, 12, 20, 12, 0, 0, 0, time.UTC)
	provider := &fakeProvider{events: []qtickets.RawEvent{
		rawEventAt(1, "2024-12-21T19:30:00+03:00"),
		rawEventAt(2, "2024-12-22T19:30:00+03:00"),
		rawEventAt(3, "2024-12-23T19:30:00+03:00"),
	}}
	svc := newTestService(provider, now)

	page, err := svc.Archive(context.Background(), FilterAll, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Events, 1)
	assert.Equal(t, int64(3), page.Events[0].ID)

	// Out-of-range page is empty, never an error.
	page, err = svc.Archive(context.Background(), FilterAll, 9, 2)
	require.NoError(t, err)
	assert.Empty(t, page.Events)
	assert.Equal(t, 3, page.Total)
}

func TestArchiveSameDateCountsCoverFullSet(t *testing.T) {
	now := time.Date(2024, 12, 20, 12, 0, 0, 0, time.UTC)
	provider := &fakeProvider{events: []qtickets.RawEvent{
		rawEventAt(1, "2024-12-25T19:30:00+03:00"),
		rawEventAt(2, "2024-12-25T21:00:00+03:00"),
		rawEventAt(3, "2024-11-01T19:30:00+03:00"),
	}}
	svc := newTestService(provider, now)

	// Even with the past event filtered out, its date key stays counted.
	page, err := svc.Archive(context.Background(), FilterUpcoming, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, page.SameDateCounts["2024-12-25"])
	assert.Equal(t, 1, page.SameDateCounts["2024-11-01"])
}

func TestResolveSlugRoundTrip(t *testing.T) {
	now := time.Date(2024, 12, 20, 12, 0, 0, 0, time.UTC)
	provider := &fakeProvider{events: []qtickets.RawEvent{
		rawEventAt(61960, "2024-12-25T19:30:00+03:00"),
		rawEventAt(61961, "2024-12-25T21:00:00+03:00"),
	}}
	svc := newTestService(provider, now)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	counts := events.CountByDate(all)

	for _, e := range all {
		slug := events.BuildSlug(e, events.SameDateCount(e, counts))
		require.NotEmpty(t, slug)

		got, err := svc.ResolveSlug(context.Background(), slug)
		require.NoError(t, err)
		assert.Equal(t, e.ID, got.ID)
	}
}

func TestResolveSlugCanonicalSlugMatchesDirectly(t *testing.T) {
	provider := &fakeProvider{events: []qtickets.RawEvent{
		rawEventAt(61960, "2024-12-25T19:30:00+03:00"),
	}}
	svc := newTestService(provider, time.Now())

	got, err := svc.ResolveSlug(context.Background(), "event-61960")
	require.NoError(t, err)
	assert.Equal(t, int64(61960), got.ID)
}

func TestResolveSlugNotFound(t *testing.T) {
	provider := &fakeProvider{events: []qtickets.RawEvent{
		rawEventAt(1, "2024-12-25T19:30:00+03:00"),
	}}
	svc := newTestService(provider, time.Now())

	_, err := svc.ResolveSlug(context.Background(), "01-01-99")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestResolveSlugFetchFailureIsNotNotFound(t *testing.T) {
	provider := &fakeProvider{listErr: errors.New("connection refused")}
	svc := newTestService(provider, time.Now())

	_, err := svc.ResolveSlug(context.Background(), "25-12-24")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEventNotFound)
}

func TestGetStripsCanonicalPrefix(t *testing.T) {
	provider := &fakeProvider{events: []qtickets.RawEvent{
		rawEventAt(61960, "2024-12-25T19:30:00+03:00"),
	}}
	svc := newTestService(provider, time.Now())

	got, err := svc.Get(context.Background(), "event-61960")
	require.NoError(t, err)
	assert.Equal(t, int64(61960), got.ID)

	got, err = svc.Get(context.Background(), "61960")
	require.NoError(t, err)
	assert.Equal(t, int64(61960), got.ID)
}

func TestGetNotFound(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(provider, time.Now())

	_, err := svc.Get(context.Background(), "404404")
	assert.ErrorIs(t, err, ErrEventNotFound)
}
