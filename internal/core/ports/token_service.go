package ports

import "github.com/securelogin/auth-service/internal/core/domain"

// TokenService issues and verifies signed, time-limited session tokens.
type TokenService interface {
	// Issue mints a token for subject. extended selects the 30-day lifetime
	// instead of the default 1 day.
	Issue(subject string, extended bool) (string, error)
	// Verify checks signature and expiry and returns the verified session.
	// Failures are domain.ErrTokenExpired, domain.ErrTokenSignatureInvalid
	// or domain.ErrTokenMalformed, all matching domain.ErrTokenInvalid.
	Verify(token string) (*domain.Session, error)
}
