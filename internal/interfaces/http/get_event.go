package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/novodsign/neovision-landing/internal/application/services"
	"github.com/novodsign/neovision-landing/internal/domain/events"
)

// GetEventHandler serves the canonical detail view. The :id segment is a
// raw provider id or the "event-{id}" display slug.
func (s *Server) GetEventHandler(c echo.Context) error {
	idOrSlug := c.Param("id")
	if idOrSlug == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "event id is required"})
	}

	event, err := s.events.Get(c.Request().Context(), idOrSlug)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
		}
		return echo.NewHTTPError(http.StatusBadGateway, "event is unavailable right now").SetInternal(err)
	}

	return c.JSON(http.StatusOK, EventResponse{
		Event: *event,
		Link:  events.TicketLink(*event),
	})
}
