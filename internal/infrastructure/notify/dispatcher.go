package notify

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/captable/captable-api/internal/core/ports"
	"github.com/captable/captable-api/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher delivers issuance notifications on a fixed set of workers,
// sharded by recipient email so one shareholder's notifications stay ordered.
// Delivery is simulated: the worker logs the email it would send. Enqueue is
// non-blocking; a full worker queue drops the notification rather than stall
// the issuing use case.
type Dispatcher struct {
	workers []chan ports.IssuanceNotification
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.IssuanceNotification, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.IssuanceNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a notification to the worker responsible for its recipient.
// Never blocks: if the worker's buffer is full the notification is dropped
// and counted.
func (d *Dispatcher) Enqueue(n ports.IssuanceNotification) {
	select {
	case d.workers[d.shardIndex(n.Email)] <- n:
	default:
		metrics.NotificationsDroppedTotal.Inc()
		d.log.Warn().Str("email", n.Email).Msg("notification queue full, dropping")
	}
}

// shardIndex maps a recipient email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.IssuanceNotification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			d.log.Info().
				Str("email", n.Email).
				Int64("shareholder_id", n.ShareholderID).
				Int64("shares", n.NumberOfShares).
				Int("worker_id", id).
				Msg("simulating email: shares issued")
		}
	}
}
