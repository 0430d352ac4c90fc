package ports

import (
	"context"

	"github.com/securelogin/auth-service/internal/core/domain"
)

// AuthRequest carries one login attempt across the form boundary.
type AuthRequest struct {
	Identifier     string `validate:"required"`
	Password       string `validate:"required,min=8"`
	IdentifierType domain.IdentifierType
	RememberMe     bool
	// ClientKey identifies the caller for rate limiting (normally the IP).
	ClientKey string
}

// AuthResult is the successful outcome of an authentication.
type AuthResult struct {
	Subject string
	Token   string
	// MaxAge is the session cookie lifetime in seconds.
	MaxAge int
}

// AuthService runs the credential check pipeline and mints session tokens.
type AuthService interface {
	Authenticate(ctx context.Context, req AuthRequest) (*AuthResult, error)
}
