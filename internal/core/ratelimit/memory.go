// Package ratelimit provides the in-process login attempt limiter. Counters
// live in a plain map with lazy reset on access; a background sweeper evicts
// entries whose window has elapsed so the map stays bounded.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

type counter struct {
	count       int
	windowStart time.Time
}

// Memory is a mutex-serialized fixed-window limiter keyed by client identity.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*counter
	max     int
	window  time.Duration
	now     func() time.Time
}

// NewMemory creates a limiter allowing max attempts per window. Non-positive
// arguments fall back to 5 attempts per 15 minutes.
func NewMemory(max int, window time.Duration) *Memory {
	if max <= 0 {
		max = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &Memory{
		entries: make(map[string]*counter),
		max:     max,
		window:  window,
		now:     time.Now,
	}
}

// Allow records an attempt for clientKey and reports whether it is permitted.
// The first attempt of a window always passes; once max attempts have been
// recorded inside the window, further attempts are rejected without being
// counted.
func (m *Memory) Allow(_ context.Context, clientKey string) bool {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[clientKey]
	if !ok || now.Sub(e.windowStart) > m.window {
		m.entries[clientKey] = &counter{count: 1, windowStart: now}
		return true
	}
	if e.count >= m.max {
		return false
	}
	e.count++
	return true
}

// Sweep removes every counter whose window has elapsed.
func (m *Memory) Sweep() {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, e := range m.entries {
		if now.Sub(e.windowStart) > m.window {
			delete(m.entries, key)
		}
	}
}

// StartSweeper launches a goroutine that sweeps stale counters every
// interval until ctx is cancelled.
func (m *Memory) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = m.window
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}
