package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/novodsign/neovision-landing/internal/domain/content"
	"github.com/novodsign/neovision-landing/internal/infrastructure/contentstore"
)

// requireAdmin guards the admin group with the static deploy-time token.
// This is the whole of the admin auth contract; there are no users or
// sessions behind it.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.adminToken == "" {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "admin API is disabled"})
		}

		token := strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
		if token == "" {
			token = c.Request().Header.Get("X-Api-Key")
		}
		if token != s.adminToken {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid admin token"})
		}
		return next(c)
	}
}

type ReleaseRequest struct {
	Title      string     `json:"title"`
	Artist     string     `json:"artist"`
	CoverURL   string     `json:"coverUrl"`
	StreamURL  string     `json:"streamUrl"`
	ReleasedAt *time.Time `json:"releasedAt"`
}

func (s *Server) CreateReleaseHandler(c echo.Context) error {
	var req ReleaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"})
	}

	release, err := s.content.CreateRelease(c.Request().Context(), content.Release{
		Title:      req.Title,
		Artist:     req.Artist,
		CoverURL:   req.CoverURL,
		StreamURL:  req.StreamURL,
		ReleasedAt: req.ReleasedAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, release)
}

func (s *Server) UpdateReleaseHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "id is not a valid UUID"})
	}

	var req ReleaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	release, err := s.content.UpdateRelease(c.Request().Context(), content.Release{
		ID:         id,
		Title:      req.Title,
		Artist:     req.Artist,
		CoverURL:   req.CoverURL,
		StreamURL:  req.StreamURL,
		ReleasedAt: req.ReleasedAt,
	})
	if err != nil {
		if errors.Is(err, contentstore.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "release not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, release)
}

func (s *Server) DeleteReleaseHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "id is not a valid UUID"})
	}

	if err := s.content.DeleteRelease(c.Request().Context(), id); err != nil {
		if errors.Is(err, contentstore.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "release not found"})
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type GalleryImageRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	EventID  int64  `json:"eventId"`
}

func (s *Server) CreateGalleryImageHandler(c echo.Context) error {
	var req GalleryImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.ImageURL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "imageUrl is required"})
	}

	image, err := s.content.CreateGalleryImage(c.Request().Context(), content.GalleryImage{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		EventID:  req.EventID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, image)
}

func (s *Server) UpdateGalleryImageHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "id is not a valid UUID"})
	}

	var req GalleryImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	image, err := s.content.UpdateGalleryImage(c.Request().Context(), content.GalleryImage{
		ID:       id,
		Title:    req.Title,
		ImageURL: req.ImageURL,
		EventID:  req.EventID,
	})
	if err != nil {
		if errors.Is(err, contentstore.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "gallery image not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, image)
}

func (s *Server) DeleteGalleryImageHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "id is not a valid UUID"})
	}

	if err := s.content.DeleteGalleryImage(c.Request().Context(), id); err != nil {
		if errors.Is(err, contentstore.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "gallery image not found"})
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ListContactsHandler(c echo.Context) error {
	contacts, err := s.content.ListContacts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"data": contacts})
}

type ContactStatusRequest struct {
	Status content.ContactStatus `json:"status"`
	Notes  string                `json:"notes"`
}

func (s *Server) UpdateContactStatusHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "id is not a valid UUID"})
	}

	var req ContactStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	switch req.Status {
	case content.ContactNew, content.ContactRead, content.ContactAnswered:
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown contact status"})
	}

	submission, err := s.content.UpdateContactStatus(c.Request().Context(), id, req.Status, req.Notes)
	if err != nil {
		if errors.Is(err, contentstore.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "contact not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, submission)
}
