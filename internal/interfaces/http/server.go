package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/novodsign/neovision-landing/internal/application/services"
)

type Server struct {
	e      *echo.Echo
	listen string

	events  *services.EventsService
	content *services.ContentService
	proxy   *QticketsProxy
	session SessionState

	adminToken string
	publicURL  string
	log        zerolog.Logger
}

func NewServer(
	e *echo.Echo,
	listen string,
	eventsService *services.EventsService,
	contentService *services.ContentService,
	proxy *QticketsProxy,
	session SessionState,
	adminToken string,
	publicURL string,
	log zerolog.Logger,
) *Server {
	srv := &Server{
		e:          e,
		listen:     listen,
		events:     eventsService,
		content:    contentService,
		proxy:      proxy,
		session:    session,
		adminToken: adminToken,
		publicURL:  publicURL,
		log:        log,
	}

	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(correlationID)
	e.Use(requestLogger(log))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/session", srv.GetSessionHandler)

	e.GET("/events", srv.GetEventsHandler)
	e.GET("/events/upcoming", srv.GetUpcomingEventsHandler)
	e.GET("/event/:id", srv.GetEventHandler)
	e.GET("/e/:slug", srv.ResolveSlugHandler)

	e.GET("/api/qtickets", srv.proxy.Handle)
	e.GET("/api/qtickets/*", srv.proxy.Handle)

	e.GET("/releases", srv.ListReleasesHandler)
	e.GET("/gallery", srv.ListGalleryHandler)
	e.POST("/contact", srv.SubmitContactHandler)

	admin := e.Group("/admin", srv.requireAdmin)
	admin.POST("/releases", srv.CreateReleaseHandler)
	admin.PUT("/releases/:id", srv.UpdateReleaseHandler)
	admin.DELETE("/releases/:id", srv.DeleteReleaseHandler)
	admin.POST("/gallery", srv.CreateGalleryImageHandler)
	admin.PUT("/gallery/:id", srv.UpdateGalleryImageHandler)
	admin.DELETE("/gallery/:id", srv.DeleteGalleryImageHandler)
	admin.GET("/contacts", srv.ListContactsHandler)
	admin.PUT("/contacts/:id/status", srv.UpdateContactStatusHandler)

	return srv
}

func (s *Server) Start() error {
	err := s.e.Start(s.listen)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// GetSessionHandler reports and records the has-visited flag gating the
// SPA preloader.
func (s *Server) GetSessionHandler(c echo.Context) error {
	visited := s.session.HasVisited(c)
	if !visited {
		s.session.MarkVisited(c)
	}
	return c.JSON(http.StatusOK, map[string]bool{"hasVisited": visited})
}
