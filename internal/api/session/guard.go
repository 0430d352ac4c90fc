package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/securelogin/auth-service/internal/api/metrics"
	"github.com/securelogin/auth-service/internal/core/ports"
)

const subjectKey = "session_subject"

// Get reads the session cookie and verifies it. It never fails loudly:
// absent, malformed, tampered or expired tokens all resolve to ok=false,
// with the cause logged at debug level.
func Get(c echo.Context, tokens ports.TokenService, log zerolog.Logger) (subject string, ok bool) {
	cookie, err := c.Cookie(Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	sess, err := tokens.Verify(cookie.Value)
	if err != nil {
		metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
		log.Debug().Err(err).Msg("session token rejected")
		return "", false
	}

	metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
	return sess.Subject, true
}

// Require guards a route: without a valid session the request is redirected
// to the entry point; with one, the verified subject is placed in the
// request context for handlers.
func Require(tokens ports.TokenService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, ok := Get(c, tokens, log)
			if !ok {
				return c.Redirect(http.StatusSeeOther, EntryPath)
			}
			c.Set(subjectKey, subject)
			return next(c)
		}
	}
}

// Subject returns the verified identity injected by Require. Empty means the
// guard did not run for this route.
func Subject(c echo.Context) string {
	subject, _ := c.Get(subjectKey).(string)
	return subject
}
