package ports

import (
	"context"

	"github.com/securelogin/auth-service/internal/core/domain"
)

// AuditRepository persists login attempt records.
type AuditRepository interface {
	Record(ctx context.Context, attempt domain.LoginAttempt) error
}

// AuditSink accepts attempts for asynchronous persistence. Implementations
// must never block the login path beyond a bounded buffer.
type AuditSink interface {
	Enqueue(attempt domain.LoginAttempt)
}
