package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/novodsign/neovision-landing/internal/cache"
	"github.com/novodsign/neovision-landing/internal/observability"
)

const proxyMaxBodyBytes = 4 << 20

// QticketsProxy forwards SPA calls to the provider API so the browser
// never sees the API key and never fights CORS. Responses that are not
// JSON are flattened into a structured error envelope; 2xx GET responses
// are cached for a short TTL per process.
type QticketsProxy struct {
	upstream string
	apiKey   string
	httpc    *http.Client
	cache    *cache.TTL
	log      zerolog.Logger
}

func NewQticketsProxy(upstream, apiKey string, httpc *http.Client, ttlCache *cache.TTL, log zerolog.Logger) *QticketsProxy {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &QticketsProxy{
		upstream: strings.TrimRight(upstream, "/"),
		apiKey:   apiKey,
		httpc:    httpc,
		cache:    ttlCache,
		log:      log,
	}
}

type proxyErrorEnvelope struct {
	Error   string `json:"error"`
	Status  int    `json:"status,omitempty"`
	Preview string `json:"preview,omitempty"`
}

type cachedResponse struct {
	status int
	body   []byte
}

func (p *QticketsProxy) Handle(c echo.Context) error {
	path := strings.TrimLeft(c.Param("*"), "/")
	if path == "" {
		path = "events"
	}

	key := path + "?" + c.QueryString()
	if cached, ok := p.cache.Get(key); ok {
		resp := cached.(cachedResponse)
		observability.ProxyCache.WithLabelValues("hit").Inc()
		c.Response().Header().Set("X-Cache", "HIT")
		return c.JSONBlob(resp.status, resp.body)
	}
	observability.ProxyCache.WithLabelValues("miss").Inc()

	target := p.upstream + "/" + path
	if qs := c.QueryString(); qs != "" {
		target += "?" + qs
	}

	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, target, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, proxyErrorEnvelope{Error: "Failed to fetch from Qtickets API"})
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpc.Do(req)
	if err != nil {
		p.log.Err(err).Str("path", path).Msg("qtickets proxy request failed")
		return c.JSON(http.StatusBadGateway, proxyErrorEnvelope{Error: "Failed to fetch from Qtickets API"})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, proxyMaxBodyBytes))
	if err != nil {
		p.log.Err(err).Str("path", path).Msg("qtickets proxy read failed")
		return c.JSON(http.StatusBadGateway, proxyErrorEnvelope{Error: "Failed to fetch from Qtickets API"})
	}

	if !json.Valid(body) {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200]
		}
		p.log.Warn().Str("path", path).Int("status", resp.StatusCode).Str("preview", preview).
			Msg("non-JSON response from qtickets")
		return c.JSON(http.StatusInternalServerError, proxyErrorEnvelope{
			Error:   "Invalid response from Qtickets API",
			Status:  resp.StatusCode,
			Preview: preview,
		})
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		p.cache.Set(key, cachedResponse{status: resp.StatusCode, body: body})
	}
	return c.JSONBlob(resp.StatusCode, body)
}
