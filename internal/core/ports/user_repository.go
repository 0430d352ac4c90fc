package ports

import (
	"context"

	"github.com/securelogin/auth-service/internal/core/domain"
)

// UserRepository abstracts credential lookup so a persistent store can be
// substituted for the in-memory one without touching the authenticator.
type UserRepository interface {
	// FindByIdentifier returns the user whose field named by identifierType
	// equals identifier, or domain.ErrInvalidCredentials when no such user
	// exists.
	FindByIdentifier(ctx context.Context, identifierType domain.IdentifierType, identifier string) (*domain.User, error)
}
