package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// JournalDispatcher writes submission records asynchronously so a submit
// never waits on the journal. Records are sharded to a fixed set of workers
// by user id, which keeps one user's records in order.
type JournalDispatcher struct {
	workers []chan *domain.SubmissionRecord
	journal ports.SubmissionJournal
	log     zerolog.Logger
}

// NewJournalDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewJournalDispatcher(numWorkers int, journal ports.SubmissionJournal, log zerolog.Logger) *JournalDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &JournalDispatcher{
		workers: make([]chan *domain.SubmissionRecord, numWorkers),
		journal: journal,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.SubmissionRecord, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *JournalDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a record to the worker responsible for its user. When the
// worker's buffer is full the record is dropped with a warning; the journal
// is an audit aid, not the system of record.
func (d *JournalDispatcher) Enqueue(rec *domain.SubmissionRecord) {
	select {
	case d.workers[d.shardIndex(rec.UserID)] <- rec:
	default:
		d.log.Warn().Str("kind", rec.Kind).Str("user_id", rec.UserID).Msg("journal buffer full, record dropped")
	}
}

func (d *JournalDispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *JournalDispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.SubmissionRecord) {
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-ch:
			if !ok {
				return
			}
			if err := d.journal.Record(ctx, rec); err != nil {
				d.log.Error().Err(err).
					Str("kind", rec.Kind).
					Int("worker_id", id).
					Msg("journal write failed")
			}
		}
	}
}
