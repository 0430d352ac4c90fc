package store

import (
	"context"
	"sync"

	"github.com/securelogin/auth-service/internal/core/domain"
)

const defaultAuditCapacity = 1024

// AuditLog is a bounded in-memory ring of login attempt records, used when
// no persistent audit backend is configured. Oldest records are overwritten
// once capacity is reached.
type AuditLog struct {
	mu      sync.Mutex
	records []domain.LoginAttempt
	next    int
	full    bool
}

func NewAuditLog(capacity int) *AuditLog {
	if capacity <= 0 {
		capacity = defaultAuditCapacity
	}
	return &AuditLog{records: make([]domain.LoginAttempt, capacity)}
}

// Record stores one attempt. Never fails.
func (a *AuditLog) Record(_ context.Context, attempt domain.LoginAttempt) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.records[a.next] = attempt
	a.next = (a.next + 1) % len(a.records)
	if a.next == 0 {
		a.full = true
	}
	return nil
}

// Recent returns the stored attempts, oldest first.
func (a *AuditLog) Recent() []domain.LoginAttempt {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.full {
		out := make([]domain.LoginAttempt, a.next)
		copy(out, a.records[:a.next])
		return out
	}
	out := make([]domain.LoginAttempt, 0, len(a.records))
	out = append(out, a.records[a.next:]...)
	out = append(out, a.records[:a.next]...)
	return out
}
