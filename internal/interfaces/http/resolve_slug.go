package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/novodsign/neovision-landing/internal/application/services"
)

// ResolveSlugHandler turns a short URL into a redirect. A hit goes to the
// canonical detail page; anything else, including a provider outage, lands
// on the archive listing instead of a dead page.
func (s *Server) ResolveSlugHandler(c echo.Context) error {
	slug := c.Param("slug")

	event, err := s.events.ResolveSlug(c.Request().Context(), slug)
	if err != nil {
		if !errors.Is(err, services.ErrEventNotFound) {
			s.log.Err(err).Str("slug", slug).Msg("slug resolution failed")
		}
		return c.Redirect(http.StatusFound, "/events")
	}

	target := event.Slug
	if target == "" {
		target = event.IDString()
	}
	return c.Redirect(http.StatusFound, "/event/"+target)
}
