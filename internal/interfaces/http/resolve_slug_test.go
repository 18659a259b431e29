package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novodsign/neovision-landing/internal/infrastructure/qtickets"
)

func TestResolveSlugRedirectsToDetailPage(t *testing.T) {
	provider := &stubProvider{events: []qtickets.RawEvent{
		stubEventAt(61960, "2030-12-25T19:30:00+03:00"),
	}}
	e := newTestServer(t, serverOptions{provider: provider})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/e/25-12-30", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/event/event-61960", rec.Header().Get("Location"))
}

func TestResolveSlugDisambiguatedCollision(t *testing.T) {
	provider := &stubProvider{events: []qtickets.RawEvent{
		stubEventAt(61960, "2030-12-25T19:30:00+03:00"),
		stubEventAt(61961, "2030-12-25T21:00:00+03:00"),
	}}
	e := newTestServer(t, serverOptions{provider: provider})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/e/25-12-30-2100", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/event/event-61961", rec.Header().Get("Location"))
}

func TestResolveSlugMissRedirectsToArchive(t *testing.T) {
	provider := &stubProvider{events: []qtickets.RawEvent{
		stubEventAt(61960, "2030-12-25T19:30:00+03:00"),
	}}
	e := newTestServer(t, serverOptions{provider: provider})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/e/01-01-99", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/events", rec.Header().Get("Location"))
}

func TestResolveSlugProviderOutageRedirectsToArchive(t *testing.T) {
	provider := &stubProvider{listErr: errors.New("connection refused")}
	e := newTestServer(t, serverOptions{provider: provider})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/e/25-12-30", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/events", rec.Header().Get("Location"))
}
