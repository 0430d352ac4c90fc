package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/securelogin/auth-service/internal/core/domain"
	"github.com/securelogin/auth-service/internal/core/ports"
)

var validate = validator.New()

// Session cookie lifetimes in seconds.
const (
	sessionMaxAge  = 86400   // 1 day
	extendedMaxAge = 2592000 // 30 days
)

// AuthService runs the login pipeline: rate limit, structural validation,
// credential lookup, password verification, token issuance. The rate check
// comes first, so malformed submissions still consume attempts. Each step
// fails the attempt with a dedicated domain error; credential lookup and
// password mismatch share domain.ErrInvalidCredentials so callers get no
// user-existence oracle.
type AuthService struct {
	users   ports.UserRepository
	tokens  ports.TokenService
	limiter ports.RateLimiter
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, limiter ports.RateLimiter, audit ports.AuditSink, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, limiter: limiter, audit: audit, log: log}
}

func (s *AuthService) Authenticate(ctx context.Context, req ports.AuthRequest) (*ports.AuthResult, error) {
	if !s.limiter.Allow(ctx, req.ClientKey) {
		s.record(req, false, "rate_limited")
		return nil, domain.ErrRateLimited
	}

	if err := validateRequest(req); err != nil {
		s.log.Debug().Err(err).Msg("login input rejected")
		s.record(req, false, "invalid_input")
		return nil, domain.ErrInvalidInput
	}

	user, err := s.users.FindByIdentifier(ctx, req.IdentifierType, req.Identifier)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.record(req, false, "unknown_identifier")
			return nil, domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Msg("credential lookup failed")
		s.record(req, false, "store_error")
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.record(req, false, "password_mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, req.RememberMe)
	if err != nil {
		s.log.Error().Err(err).Str("subject", user.ID).Msg("token issuance failed")
		s.record(req, false, "token_error")
		return nil, err
	}

	maxAge := sessionMaxAge
	if req.RememberMe {
		maxAge = extendedMaxAge
	}

	s.record(req, true, "")
	return &ports.AuthResult{Subject: user.ID, Token: token, MaxAge: maxAge}, nil
}

// validateRequest enforces the structural rules of a login submission. The
// returned detail is for server-side logs only; the caller collapses every
// violation into the single domain.ErrInvalidInput.
func validateRequest(req ports.AuthRequest) error {
	if strings.TrimSpace(req.Identifier) == "" {
		return errors.New("identifier is blank")
	}
	if !req.IdentifierType.Valid() {
		return fmt.Errorf("unknown identifier type %q", req.IdentifierType)
	}
	return validate.Struct(req)
}

func (s *AuthService) record(req ports.AuthRequest, success bool, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.LoginAttempt{
		ClientKey:      req.ClientKey,
		IdentifierType: req.IdentifierType,
		Success:        success,
		Reason:         reason,
		At:             time.Now().UTC(),
	})
}
