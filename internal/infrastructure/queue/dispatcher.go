package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/vollmed/registry-api/internal/api/metrics"
	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit entries to a fixed set of workers using consistent
// hashing on the record ID, keeping the entries of one record in order.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	service ports.AuditService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands an entry to the worker responsible for its record.
// It never blocks the request path: when that worker's queue is full the entry is dropped.
func (d *Dispatcher) Publish(entry domain.AuditEntry) {
	idx := d.shardIndex(entry.RecordID)
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEntriesDroppedTotal.Inc()
		d.log.Warn().
			Str("record_id", entry.RecordID).
			Str("action", string(entry.Action)).
			Int("worker_id", idx).
			Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps a record ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(recordID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recordID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			err := d.service.Record(ctx, entry)
			result := "ok"
			if err != nil {
				result = "error"
				d.log.Error().Err(err).
					Str("record_id", entry.RecordID).
					Int("worker_id", id).
					Msg("audit entry processing failed")
			}
			metrics.AuditProcessingDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		}
	}
}
