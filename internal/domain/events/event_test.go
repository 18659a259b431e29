package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeNextShow(t *testing.T) {
	date := time.Date(2024, 12, 25, 19, 30, 0, 0, time.UTC)
	price := 900.0

	e := Event{
		Shows: []Show{
			{ID: 1, Date: &date, MinPrice: &price, TicketURL: "https://qtickets.ru/event/1/show/1"},
			{ID: 2},
		},
	}
	e.RecomputeNextShow()

	require.NotNil(t, e.NextShow)
	assert.Equal(t, &date, e.NextShow.Date)
	assert.Equal(t, &price, e.NextShow.MinPrice)
	assert.Equal(t, "https://qtickets.ru/event/1/show/1", e.NextShow.TicketURL)

	e.Shows = nil
	e.RecomputeNextShow()
	assert.Nil(t, e.NextShow)
}

func TestEventDateFallsBackToNextShow(t *testing.T) {
	date := time.Date(2024, 12, 25, 19, 30, 0, 0, time.UTC)

	e := Event{NextShow: &NextShow{Date: &date}}
	require.NotNil(t, e.Date())
	assert.True(t, e.Date().Equal(date))

	assert.Nil(t, Event{}.Date())
}

func TestHasUpcomingShow(t *testing.T) {
	now := time.Date(2024, 12, 25, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	e := Event{Shows: []Show{{Date: &past}, {Date: &future}}}
	assert.True(t, e.HasUpcomingShow(now))

	e = Event{Shows: []Show{{Date: &past}}}
	assert.False(t, e.HasUpcomingShow(now))

	assert.False(t, Event{}.HasUpcomingShow(now))
}

func TestTicketLink(t *testing.T) {
	external := TicketLink(Event{ID: 1, TicketURL: "https://qtickets.ru/event/1"})
	assert.Equal(t, LinkExternal, external.Kind)
	assert.Equal(t, "https://qtickets.ru/event/1", external.URL)
	assert.Empty(t, external.Route)

	internal := TicketLink(Event{ID: 2, Slug: "event-2"})
	assert.Equal(t, LinkInternal, internal.Kind)
	assert.Equal(t, "/event/event-2", internal.Route)
	assert.Empty(t, internal.URL)
}
