package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/novodsign/neovision-landing/internal/application/services"
	"github.com/novodsign/neovision-landing/internal/cache"
	"github.com/novodsign/neovision-landing/internal/config"
	"github.com/novodsign/neovision-landing/internal/infrastructure/contentstore"
	"github.com/novodsign/neovision-landing/internal/infrastructure/qtickets"
	httpapi "github.com/novodsign/neovision-landing/internal/interfaces/http"
)

type App struct {
	cfg    *config.Config
	logger zerolog.Logger
	srv    *httpapi.Server
	cron   *cron.Cron
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "neovision").Logger()

	client := qtickets.NewClient(qtickets.Config{
		BaseURL:      cfg.Qtickets.BaseURL,
		APIKey:       cfg.Qtickets.APIKey,
		HTTPClient:   &http.Client{Timeout: cfg.Qtickets.RequestTimeout.Std()},
		MaxPages:     cfg.Qtickets.MaxPages,
		FetchTimeout: cfg.Qtickets.FetchTimeout.Std(),
		Logger:       logger.With().Str("component", "qtickets").Logger(),
	})

	eventsService := services.NewEventsService(client, logger.With().Str("component", "events").Logger())
	contentService := services.NewContentService(contentstore.New())

	proxyCache := cache.New(cfg.Proxy.CacheTTL.Std())
	proxy := httpapi.NewQticketsProxy(
		cfg.Qtickets.BaseURL,
		cfg.Qtickets.APIKey,
		&http.Client{Timeout: cfg.Qtickets.RequestTimeout.Std()},
		proxyCache,
		logger.With().Str("component", "proxy").Logger(),
	)

	srv := httpapi.NewServer(
		echo.New(),
		cfg.Listen,
		eventsService,
		contentService,
		proxy,
		httpapi.NewCookieSession(),
		cfg.AdminToken,
		cfg.PublicURL,
		logger,
	)

	scheduler := cron.New()
	if cfg.Proxy.PurgeCron != "" {
		_, err := scheduler.AddFunc(cfg.Proxy.PurgeCron, func() {
			if n := proxyCache.PurgeExpired(); n > 0 {
				logger.Debug().Int("entries", n).Msg("purged expired proxy cache entries")
			}
		})
		if err != nil {
			return nil, fmt.Errorf("scheduling proxy cache purge: %w", err)
		}
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		srv:    srv,
		cron:   scheduler,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.cron.Start()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info().Str("listen", a.cfg.Listen).Msg("starting server")
		return a.srv.Start()
	})

	g.Go(func() error {
		<-ctx.Done()

		<-a.cron.Stop().Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := a.srv.Stop(shutdownCtx)
		if err != nil {
			a.logger.Err(err).Msg("error stopping server")
		}
		return err
	})

	return g.Wait()
}
