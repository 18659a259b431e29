package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/novodsign/neovision-landing/internal/application/services"
	"github.com/novodsign/neovision-landing/internal/domain/events"
)

type EventListResponse struct {
	Data       []EventResponse `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

type Pagination struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

type EventResponse struct {
	events.Event
	ShortURL string            `json:"shortUrl,omitempty"`
	Link     events.LinkTarget `json:"link"`
}

// GetEventsHandler serves the archive listing: sorted, filtered by
// upcoming/past, paginated, each event carrying its shareable short URL.
func (s *Server) GetEventsHandler(c echo.Context) error {
	filter := services.ArchiveFilter(c.QueryParam("filter"))
	switch filter {
	case services.FilterUpcoming, services.FilterPast, services.FilterAll:
	case "":
		filter = services.FilterAll
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "filter must be upcoming, past or all"})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("perPage"))

	listing, err := s.events.Archive(c.Request().Context(), filter, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "events are unavailable right now").SetInternal(err)
	}

	data := make([]EventResponse, 0, len(listing.Events))
	for _, e := range listing.Events {
		data = append(data, s.eventResponse(e, listing.SameDateCounts))
	}

	return c.JSON(http.StatusOK, EventListResponse{
		Data: data,
		Pagination: Pagination{
			Total:   listing.Total,
			Page:    listing.Page,
			PerPage: listing.PerPage,
		},
	})
}

// GetUpcomingEventsHandler serves the landing-page strip of next events.
func (s *Server) GetUpcomingEventsHandler(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	upcoming, counts, err := s.events.Upcoming(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "events are unavailable right now").SetInternal(err)
	}

	data := make([]EventResponse, 0, len(upcoming))
	for _, e := range upcoming {
		data = append(data, s.eventResponse(e, counts))
	}
	return c.JSON(http.StatusOK, data)
}

func (s *Server) eventResponse(e events.Event, counts map[string]int) EventResponse {
	return EventResponse{
		Event:    e,
		ShortURL: events.ShareableURL(e, events.SameDateCount(e, counts), s.publicURL),
		Link:     events.TicketLink(e),
	}
}
