package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/securelogin/auth-service/internal/api/session"
	"github.com/securelogin/auth-service/internal/core/ratelimit"
	"github.com/securelogin/auth-service/internal/core/service"
	"github.com/securelogin/auth-service/internal/infrastructure/store"
)

// newTestRouter wires the real services over the in-memory store, the way
// cmd/server does without Mongo and Redis configured.
func newTestRouter(maxAttempts int) *echo.Echo {
	tokens := service.NewTokenService("test-secret")
	limiter := ratelimit.NewMemory(maxAttempts, 15*time.Minute)
	auth := service.NewAuthService(store.NewMemory(nil), tokens, limiter, nil, zerolog.Nop())

	return NewRouter(Deps{
		Auth:    auth,
		Tokens:  tokens,
		Log:     zerolog.Nop(),
		Metrics: prometheus.NewRegistry(),
	})
}

func login(e *echo.Echo, identifier, password, identifierType, rememberMe string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("identifier", identifier)
	form.Set("password", password)
	form.Set("identifierType", identifierType)
	form.Set("rememberMe", rememberMe)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.Name {
			return ck
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func TestLoginFlow_EndToEnd(t *testing.T) {
	e := newTestRouter(5)

	// demo credentials from the seeded store
	rec := login(e, "utente@esempio.com", "password123", "email", "false")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 from login, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}
	ck := sessionCookie(t, rec)
	if ck.MaxAge != 86400 {
		t.Fatalf("expected maxAge 86400, got %d", ck.MaxAge)
	}

	// the issued cookie opens the dashboard and yields the same subject
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	dash := httptest.NewRecorder()
	e.ServeHTTP(dash, req)

	if dash.Code != http.StatusOK {
		t.Fatalf("expected 200 from dashboard, got %d", dash.Code)
	}
	if !strings.Contains(dash.Body.String(), `"subject":"1"`) {
		t.Fatalf("expected subject 1 in dashboard payload, got %s", dash.Body.String())
	}
}

func TestLoginFlow_WrongPasswordMatchesUnknownUser(t *testing.T) {
	e := newTestRouter(50)

	wrongPassword := login(e, "utente@esempio.com", "wrongpass1", "email", "false")
	unknownUser := login(e, "nessuno@esempio.com", "password123", "email", "false")

	if wrongPassword.Code != http.StatusUnauthorized || unknownUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both, got %d and %d", wrongPassword.Code, unknownUser.Code)
	}
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatalf("failure responses must be indistinguishable")
	}
}

func TestLoginFlow_RateLimiting(t *testing.T) {
	e := newTestRouter(5)

	for i := 1; i <= 5; i++ {
		rec := login(e, "utente@esempio.com", "wrongpass1", "email", "false")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, rec.Code)
		}
	}

	rec := login(e, "utente@esempio.com", "password123", "email", "false")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("6th attempt must be rate limited even with correct credentials, got %d", rec.Code)
	}
}

func TestLoginFlow_MalformedAttemptsConsumeRateLimit(t *testing.T) {
	e := newTestRouter(5)

	// structurally invalid submissions are charged against the client before
	// validation rejects them
	for i := 1; i <= 5; i++ {
		rec := login(e, "utente@esempio.com", "short", "email", "false")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("attempt %d: expected 400, got %d", i, rec.Code)
		}
	}

	rec := login(e, "utente@esempio.com", "password123", "email", "false")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("6th attempt must be rate limited after malformed ones, got %d", rec.Code)
	}
}

func TestLoginFlow_DashboardWithoutSessionRedirects(t *testing.T) {
	e := newTestRouter(5)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestLoginFlow_LogoutEndsSession(t *testing.T) {
	e := newTestRouter(5)

	rec := login(e, "utente", "password123", "username", "false")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login failed: %d", rec.Code)
	}
	ck := sessionCookie(t, rec)

	out := httptest.NewRecorder()
	logoutReq := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	logoutReq.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	e.ServeHTTP(out, logoutReq)

	if out.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 from logout, got %d", out.Code)
	}
	cleared := sessionCookie(t, out)
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("logout must clear the cookie, got value=%q maxAge=%d", cleared.Value, cleared.MaxAge)
	}

	// logout is idempotent: clearing again without a session still works
	again := httptest.NewRecorder()
	e.ServeHTTP(again, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	if again.Code != http.StatusSeeOther {
		t.Fatalf("logout without a session must still redirect, got %d", again.Code)
	}
}

func TestRouter_HealthAndEntryPoint(t *testing.T) {
	e := newTestRouter(5)

	for _, path := range []string{"/", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
