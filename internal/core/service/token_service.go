package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/securelogin/auth-service/internal/core/domain"
)

const (
	sessionTTL  = 24 * time.Hour
	extendedTTL = 30 * 24 * time.Hour
)

// TokenService issues and verifies HS256-signed session tokens. The token
// binds the subject, issuance and expiry timestamps and a unique jti so two
// tokens for the same subject are never identical.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// Issue mints a token for subject, valid for 1 day, or 30 days when extended.
func (s *TokenService) Issue(subject string, extended bool) (string, error) {
	ttl := sessionTTL
	if extended {
		ttl = extendedTTL
	}

	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks the signature and expiry and returns the verified session.
// Identity decisions must only ever be made from the value returned here,
// never from an unverified payload.
func (s *TokenService) Verify(token string) (*domain.Session, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))

	switch {
	case err == nil && parsed.Valid:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, domain.ErrTokenSignatureInvalid
	default:
		return nil, domain.ErrTokenMalformed
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, domain.ErrTokenMalformed
	}
	return &domain.Session{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}
