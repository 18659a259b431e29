package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/novodsign/neovision-landing/internal/domain/content"
)

func (s *Server) ListReleasesHandler(c echo.Context) error {
	releases, err := s.content.ListReleases(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":       releases,
		"pagination": Pagination{Total: len(releases), Page: 1, PerPage: len(releases)},
	})
}

func (s *Server) ListGalleryHandler(c echo.Context) error {
	images, err := s.content.ListGallery(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":       images,
		"pagination": Pagination{Total: len(images), Page: 1, PerPage: len(images)},
	})
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (s *Server) SubmitContactHandler(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email and message are required"})
	}

	submission, err := s.content.SubmitContact(c.Request().Context(), content.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, submission)
}
