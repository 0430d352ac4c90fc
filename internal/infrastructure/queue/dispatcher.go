package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/securelogin/auth-service/internal/core/domain"
	"github.com/securelogin/auth-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes login attempt audit records to a fixed set of workers
// using consistent hashing on the client key, guaranteeing per-client record
// ordering while keeping persistence off the login path.
type Dispatcher struct {
	workers []chan domain.LoginAttempt
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.LoginAttempt, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LoginAttempt, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an attempt to the worker responsible for its client key.
// The audit trail is best-effort: when the worker's buffer is full the
// record is dropped with a warning rather than stalling a login.
func (d *Dispatcher) Enqueue(attempt domain.LoginAttempt) {
	select {
	case d.workers[d.shardIndex(attempt.ClientKey)] <- attempt:
	default:
		d.log.Warn().Str("client_key", attempt.ClientKey).Msg("audit queue full, dropping attempt record")
	}
}

// shardIndex maps a client key deterministically to a worker index.
func (d *Dispatcher) shardIndex(clientKey string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(clientKey))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.LoginAttempt) {
	for {
		select {
		case <-ctx.Done():
			return
		case attempt, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.Record(ctx, attempt); err != nil {
				d.log.Error().Err(err).
					Str("client_key", attempt.ClientKey).
					Int("worker_id", id).
					Msg("audit record persistence failed")
			}
		}
	}
}
