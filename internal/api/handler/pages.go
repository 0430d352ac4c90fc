package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/securelogin/auth-service/internal/api/session"
)

// PagesHandler serves the public entry point and the protected dashboard.
// Both return JSON payloads; page rendering belongs to the front-end.
type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Home is the public entry point unauthenticated callers are redirected to.
//
// @Summary      Entry point
// @Tags         pages
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *PagesHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service": "secure-login",
		"login":   "/auth/login",
	})
}

// Dashboard is the protected resource; the session guard runs before it.
//
// @Summary      Dashboard
// @Tags         pages
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      303  {string}  string  "redirect to / when unauthenticated"
// @Router       /dashboard [get]
func (h *PagesHandler) Dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "welcome back",
		"subject": session.Subject(c),
	})
}
