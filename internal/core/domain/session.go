package domain

import "time"

// Session is the verified identity carried by a session token. Only the
// token service produces one; consumers must never build it from an
// unverified payload.
type Session struct {
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginAttempt is an audit record of a single authentication attempt.
// Persisted out-of-band; never consulted on the login path itself.
type LoginAttempt struct {
	ClientKey      string         `json:"client_key"`
	IdentifierType IdentifierType `json:"identifier_type,omitempty"`
	Success        bool           `json:"success"`
	Reason         string         `json:"reason,omitempty"`
	At             time.Time      `json:"at"`
}
