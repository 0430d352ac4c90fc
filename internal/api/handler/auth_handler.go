package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/securelogin/auth-service/internal/api/metrics"
	"github.com/securelogin/auth-service/internal/api/session"
	"github.com/securelogin/auth-service/internal/core/domain"
	"github.com/securelogin/auth-service/internal/core/ports"
)

// Client-facing messages. Deliberately generic: the same text covers an
// unknown identifier and a wrong password, and input violations are never
// reported per field.
const (
	msgRateLimited        = "Too many login attempts. Try again in 15 minutes."
	msgInvalidInput       = "Invalid login details. Check the fields and try again."
	msgInvalidCredentials = "Invalid credentials. Check and try again."
	msgInternal           = "Something went wrong while signing in. Try again later."
)

type AuthHandler struct {
	auth          ports.AuthService
	secureCookies bool
	log           zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, secureCookies bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookies: secureCookies, log: log}
}

type loginRequest struct {
	Identifier     string `form:"identifier" json:"identifier"`
	Password       string `form:"password" json:"password"`
	IdentifierType string `form:"identifierType" json:"identifierType"`
	RememberMe     string `form:"rememberMe" json:"rememberMe"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Login authenticates a form submission and starts a session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        identifier      formData  string  true   "Email, username or phone"
// @Param        password        formData  string  true   "Password (min 8 characters)"
// @Param        identifierType  formData  string  true   "One of: email, username, phone"
// @Param        rememberMe      formData  string  false  "\"true\" for a 30-day session"
// @Success      303  {string}  string  "redirect to /dashboard with session cookie"
// @Failure      400  {object}  loginResponse
// @Failure      401  {object}  loginResponse
// @Failure      429  {object}  loginResponse
// @Failure      500  {object}  loginResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_input").Inc()
		return c.JSON(http.StatusBadRequest, loginResponse{Error: msgInvalidInput})
	}

	// Every submission, malformed or not, goes through the service: the rate
	// check must see the attempt before any structural validation rejects it.
	start := time.Now()
	result, err := h.auth.Authenticate(c.Request().Context(), ports.AuthRequest{
		Identifier:     req.Identifier,
		Password:       req.Password,
		IdentifierType: domain.IdentifierType(req.IdentifierType),
		RememberMe:     req.RememberMe == "true",
		ClientKey:      c.RealIP(),
	})
	metrics.LoginDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		return h.loginFailure(c, err)
	}

	// The cookie is written only once a token exists, and the success branch
	// redirects explicitly.
	session.Set(c, result.Token, result.MaxAge, h.secureCookies)
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	metrics.SessionsIssuedTotal.WithLabelValues(rememberLabel(result.MaxAge)).Inc()
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *AuthHandler) loginFailure(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		metrics.LoginAttemptsTotal.WithLabelValues("rate_limited").Inc()
		return c.JSON(http.StatusTooManyRequests, loginResponse{Error: msgRateLimited})
	case errors.Is(err, domain.ErrInvalidInput):
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_input").Inc()
		return c.JSON(http.StatusBadRequest, loginResponse{Error: msgInvalidInput})
	case errors.Is(err, domain.ErrInvalidCredentials):
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return c.JSON(http.StatusUnauthorized, loginResponse{Error: msgInvalidCredentials})
	default:
		h.log.Error().Err(err).Msg("authentication failed unexpectedly")
		metrics.LoginAttemptsTotal.WithLabelValues("internal_error").Inc()
		return c.JSON(http.StatusInternalServerError, loginResponse{Error: msgInternal})
	}
}

func rememberLabel(maxAge int) string {
	if maxAge > 86400 {
		return "true"
	}
	return "false"
}

// Logout ends the session.
//
// @Summary      Log out
// @Tags         auth
// @Success      303  {string}  string  "redirect to / with the session cookie cleared"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session.Clear(c)
	return c.Redirect(http.StatusSeeOther, session.EntryPath)
}
