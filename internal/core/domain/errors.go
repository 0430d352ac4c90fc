package domain

import "errors"

// Authentication failure taxonomy. ErrInvalidCredentials deliberately covers
// both "unknown identifier" and "wrong password" so the caller cannot tell
// the two apart.
var (
	ErrRateLimited        = errors.New("too many login attempts")
	ErrInvalidInput       = errors.New("invalid login input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ErrTokenInvalid is the class every token verification failure belongs to;
// the concrete causes below all match it via errors.Is.
var (
	ErrTokenInvalid          = errors.New("invalid session token")
	ErrTokenExpired          = wrapped{"session token expired"}
	ErrTokenSignatureInvalid = wrapped{"session token signature mismatch"}
	ErrTokenMalformed        = wrapped{"session token malformed"}
)

// wrapped is a sentinel that also matches ErrTokenInvalid.
type wrapped struct{ msg string }

func (w wrapped) Error() string { return w.msg }
func (w wrapped) Unwrap() error { return ErrTokenInvalid }
