package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionState is the capability the preloader gate depends on: whether
// this visitor has seen the site before. Injected so handlers never touch
// cookie mechanics or global state directly.
type SessionState interface {
	HasVisited(c echo.Context) bool
	MarkVisited(c echo.Context)
}

const visitedCookieName = "nv_visited"

type cookieSession struct{}

// NewCookieSession backs SessionState with a long-lived cookie.
func NewCookieSession() SessionState {
	return cookieSession{}
}

func (cookieSession) HasVisited(c echo.Context) bool {
	cookie, err := c.Cookie(visitedCookieName)
	return err == nil && cookie.Value == "1"
}

func (cookieSession) MarkVisited(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     visitedCookieName,
		Value:    "1",
		Path:     "/",
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}
