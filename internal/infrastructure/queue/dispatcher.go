package queue

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/workfusion/workforce-system/internal/api/metrics"
	"github.com/workfusion/workforce-system/internal/core/domain"
	"github.com/workfusion/workforce-system/internal/core/ports"
)

const (
	defaultWorkers       = 8
	channelBuffer        = 256
	defaultSweepInterval = 30 * time.Second
	sweepBatchLimit      = 200
)

// Deliverer executes the delivery step for one outbox entry.
type Deliverer interface {
	Deliver(ctx context.Context, e *domain.OutboxEntry) error
}

// Dispatcher is the write side of the notification pipeline. Notify appends
// a durable outbox entry, then routes it to a fixed set of workers using
// consistent hashing on the recipient key, so one recipient's notifications
// are always delivered in order. A periodic sweeper re-enqueues entries left
// pending by a crash or a delivery failure.
type Dispatcher struct {
	workers       []chan *domain.OutboxEntry
	outbox        ports.OutboxRepository
	deliverer     Deliverer
	sweepInterval time.Duration
	log           zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, outbox ports.OutboxRepository, deliverer Deliverer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:       make([]chan *domain.OutboxEntry, numWorkers),
		outbox:        outbox,
		deliverer:     deliverer,
		sweepInterval: defaultSweepInterval,
		log:           log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.OutboxEntry, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines and the sweeper. They stop when ctx
// is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
	go d.runSweeper(ctx)
}

// Notify records the intent durably and enqueues it for delivery. Once the
// append succeeds the notification is guaranteed to reach the recipient
// eventually, even if the enqueue is lost to a shutdown; the sweeper picks
// the entry up again.
func (d *Dispatcher) Notify(ctx context.Context, entityID string, role domain.Role, message string) (string, error) {
	entry := &domain.OutboxEntry{
		ID:        uuid.NewString(),
		EntityID:  entityID,
		Role:      role,
		Message:   message,
		Status:    domain.OutboxPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := d.outbox.Append(ctx, entry); err != nil {
		return "", fmt.Errorf("append outbox: %w", err)
	}
	d.enqueue(entry)
	return entry.ID, nil
}

// enqueue sends an entry to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) enqueue(entry *domain.OutboxEntry) {
	d.workers[d.shardIndex(entry.RecipientKey())] <- entry
}

// shardIndex maps a recipient key deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipientKey string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipientKey))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.OutboxEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.deliverer.Deliver(ctx, entry); err != nil {
				// The entry stays pending; the sweeper retries it.
				metrics.NotificationsDispatchedTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("outbox_id", entry.ID).
					Str("recipient", entry.RecipientKey()).
					Int("worker_id", id).
					Msg("notification delivery failed")
				continue
			}
			metrics.NotificationsDispatchedTotal.WithLabelValues("delivered").Inc()
		}
	}
}

// runSweeper periodically re-enqueues pending entries. Redelivery of an
// entry a worker is still holding only risks a duplicate advisory row.
func (d *Dispatcher) runSweeper(ctx context.Context) {
	ticker := time.NewTicker(d.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			entries, err := d.outbox.ListPending(ctx, sweepBatchLimit)
			if err != nil {
				d.log.Error().Err(err).Msg("outbox sweep failed")
				continue
			}
			for _, e := range entries {
				d.enqueue(e)
			}
			if len(entries) > 0 {
				d.log.Info().Int("count", len(entries)).Msg("re-enqueued pending notifications")
			}
		}
	}
}
