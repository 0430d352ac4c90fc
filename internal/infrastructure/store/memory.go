// Package store holds the in-memory stand-ins for persistent storage: a
// fixed user list seeded at startup and a bounded audit log.
package store

import (
	"context"

	"github.com/securelogin/auth-service/internal/core/domain"
)

// Memory is a fixed, read-only credential store. It is queried, never
// mutated, so it is safe for concurrent use without locking.
type Memory struct {
	users []domain.User
}

// NewMemory creates a store over the given users. An empty seed falls back
// to the demo account.
func NewMemory(users []domain.User) *Memory {
	if len(users) == 0 {
		users = DefaultUsers()
	}
	return &Memory{users: users}
}

// DefaultUsers returns the demo account shipped with the service.
// The hash is bcrypt of "password123".
func DefaultUsers() []domain.User {
	return []domain.User{
		{
			ID:           "1",
			Username:     "utente",
			Email:        "utente@esempio.com",
			Phone:        "+391234567890",
			PasswordHash: "$2a$10$qP3FqekIfDNiQgY4j9zoeOmdsPffermsAV7XnMSCC7Aen9tthNWvi",
		},
	}
}

// FindByIdentifier looks a user up by the field selected by identifierType.
// A miss returns domain.ErrInvalidCredentials, indistinguishable from a
// wrong password further up the pipeline.
func (m *Memory) FindByIdentifier(_ context.Context, identifierType domain.IdentifierType, identifier string) (*domain.User, error) {
	for i := range m.users {
		u := &m.users[i]
		var match bool
		switch identifierType {
		case domain.IdentifierEmail:
			match = u.Email == identifier
		case domain.IdentifierUsername:
			match = u.Username == identifier
		case domain.IdentifierPhone:
			match = u.Phone == identifier
		}
		if match {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}
