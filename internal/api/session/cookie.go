// Package session owns the session cookie lifecycle and the guard that
// protects authenticated routes. It only ever consumes tokens; minting
// stays with the authenticator.
package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Name is the session cookie name.
const Name = "session"

// EntryPath is where unauthenticated callers are sent.
const EntryPath = "/"

// Set writes the session cookie carrying token. maxAge is in seconds;
// secure should be true only behind TLS (production).
func Set(c echo.Context, token string, maxAge int, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie. Safe to call with no active session.
func Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
