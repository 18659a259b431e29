package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderRequests counts calls against the Qtickets API by endpoint
	// and outcome (ok, provider_error, parse_error, network_error).
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neovision_provider_requests_total",
		Help: "Requests issued to the Qtickets API.",
	}, []string{"endpoint", "outcome"})

	// ProviderPages counts listing pages walked during full aggregations.
	ProviderPages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "neovision_provider_pages_fetched_total",
		Help: "Listing pages fetched while aggregating the event set.",
	})

	// SlugResolutions counts short-URL lookups by outcome
	// (resolved, not_found, fetch_failed).
	SlugResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neovision_slug_resolutions_total",
		Help: "Short slug resolution attempts.",
	}, []string{"outcome"})

	// ProxyCache counts proxy cache lookups (hit, miss).
	ProxyCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neovision_proxy_cache_total",
		Help: "Qtickets proxy response cache lookups.",
	}, []string{"result"})
)
