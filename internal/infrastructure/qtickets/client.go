package qtickets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/novodsign/neovision-landing/internal/observability"
)

const (
	DefaultBaseURL = "https://qtickets.ru/api/rest/v1"

	// defaultMaxPages bounds the pagination walk. The provider is trusted
	// to eventually return an empty page; this guards against an
	// integration bug looping forever and hoarding memory.
	defaultMaxPages = 50

	maxBodyBytes = 4 << 20
	previewLen   = 200
)

type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client

	// MaxPages overrides the pagination safety bound, FetchTimeout the
	// overall deadline for a full aggregation. Zero means default.
	MaxPages     int
	FetchTimeout time.Duration

	Logger zerolog.Logger
}

// Client talks to the Qtickets REST API. All calls are sequential,
// context-aware and side-effect free beyond the HTTP request itself.
type Client struct {
	baseURL      string
	apiKey       string
	httpc        *http.Client
	maxPages     int
	fetchTimeout time.Duration
	log          zerolog.Logger
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		httpc:        cfg.HTTPClient,
		maxPages:     cfg.MaxPages,
		fetchTimeout: cfg.FetchTimeout,
		log:          cfg.Logger,
	}
}

type listEnvelope struct {
	Data []RawEvent `json:"data"`
}

type detailEnvelope struct {
	Data *RawEvent `json:"data"`
}

// UnmarshalJSON accepts both detail shapes the provider serves: the usual
// {"data": {...}} envelope and a bare event object.
func (d *detailEnvelope) UnmarshalJSON(body []byte) error {
	type alias detailEnvelope
	var a alias
	if err := json.Unmarshal(body, &a); err == nil && a.Data != nil {
		d.Data = a.Data
		return nil
	}

	var raw RawEvent
	if err := json.Unmarshal(body, &raw); err != nil {
		return err
	}
	if raw.ID != 0 {
		d.Data = &raw
	}
	return nil
}

// ListEventsPage fetches one page of the listing endpoint. An empty slice
// means the walk is done.
func (c *Client) ListEventsPage(ctx context.Context, page int) ([]RawEvent, error) {
	query := url.Values{"page": {strconv.Itoa(page)}}

	var envelope listEnvelope
	if err := c.getJSON(ctx, "events", "/events", query, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// GetEvent fetches a single event by provider id.
func (c *Client) GetEvent(ctx context.Context, id string) (*RawEvent, error) {
	var envelope detailEnvelope
	if err := c.getJSON(ctx, "event", "/events/"+url.PathEscape(id), nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, &ProviderError{StatusCode: http.StatusNotFound}
	}
	return envelope.Data, nil
}

// FetchAllEvents materializes the complete raw event set: pages are walked
// from 1, in order, one request at a time, until the provider returns an
// empty page or the safety bound is hit. Any page failure aborts the whole
// aggregation; a partial set would corrupt same-date collision counts
// downstream. Provider order is preserved and duplicates are not removed.
func (c *Client) FetchAllEvents(ctx context.Context) ([]RawEvent, error) {
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}

	var all []RawEvent
	for page := 1; page <= c.maxPages; page++ {
		pageEvents, err := c.ListEventsPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetching events page %d: %w", page, err)
		}
		observability.ProviderPages.Inc()

		if len(pageEvents) == 0 {
			return all, nil
		}
		all = append(all, pageEvents...)
		c.log.Debug().Int("page", page).Int("events", len(pageEvents)).Msg("fetched events page")
	}

	c.log.Warn().Int("pages", c.maxPages).Msg("reached page limit, stopping pagination")
	return all, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		observability.ProviderRequests.WithLabelValues(endpoint, "network_error").Inc()
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		observability.ProviderRequests.WithLabelValues(endpoint, "network_error").Inc()
		return fmt.Errorf("reading %s response: %w", path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		observability.ProviderRequests.WithLabelValues(endpoint, "provider_error").Inc()
		return &ProviderError{StatusCode: resp.StatusCode}
	}

	if err := json.Unmarshal(body, out); err != nil {
		observability.ProviderRequests.WithLabelValues(endpoint, "parse_error").Inc()
		return &ParseError{Preview: bodyPreview(body), Err: err}
	}

	observability.ProviderRequests.WithLabelValues(endpoint, "ok").Inc()
	return nil
}

func bodyPreview(body []byte) string {
	if len(body) > previewLen {
		body = body[:previewLen]
	}
	return string(body)
}
