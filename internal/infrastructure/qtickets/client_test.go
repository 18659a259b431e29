package qtickets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		HTTPClient: server.Client(),
	})
	return client, server
}

func TestFetchAllEventsStopsOnEmptyPage(t *testing.T) {
	var requests int64

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		switch page {
		case "1", "2", "3":
			fmt.Fprintf(w, `{"data":[{"id":%s1},{"id":%s2}]}`, page, page)
		default:
			fmt.Fprint(w, `{"data":[]}`)
		}
	})

	all, err := client.FetchAllEvents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), atomic.LoadInt64(&requests))
	require.Len(t, all, 6)
	// Provider order is preserved.
	assert.Equal(t, int64(11), all[0].ID)
	assert.Equal(t, int64(12), all[1].ID)
	assert.Equal(t, int64(31), all[4].ID)
}

func TestFetchAllEventsSafetyBound(t *testing.T) {
	var requests int64

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[{"id":1}]}`)
	})

	all, err := client.FetchAllEvents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(50), atomic.LoadInt64(&requests))
	assert.Len(t, all, 50)
}

func TestFetchAllEventsPageFailureIsTerminal(t *testing.T) {
	var requests int64

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[{"id":1}]}`)
	})

	all, err := client.FetchAllEvents(context.Background())
	require.Error(t, err)
	assert.Nil(t, all)

	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusBadGateway, pe.StatusCode)
	assert.Equal(t, int64(2), atomic.LoadInt64(&requests))
}

func TestListEventsPageNonJSONBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>maintenance</html>")
	})

	_, err := client.ListEventsPage(context.Background(), 1)
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Preview, "<html>")
}

func TestGetEvent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events/61960", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"id":61960,"name":"VSN7 | Москва"}}`)
	})

	raw, err := client.GetEvent(context.Background(), "61960")
	require.NoError(t, err)
	assert.Equal(t, int64(61960), raw.ID)
	assert.Equal(t, "VSN7 | Москва", raw.Name)
}

func TestGetEventBareObjectBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":61960,"name":"VSN7 | Москва"}`)
	})

	raw, err := client.GetEvent(context.Background(), "61960")
	require.NoError(t, err)
	assert.Equal(t, int64(61960), raw.ID)
}

func TestGetEventNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"not found"}`)
	})

	_, err := client.GetEvent(context.Background(), "1")
	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusNotFound, pe.StatusCode)
}
