package reconcile

import (
	"context"
	"log/slog"
	"sync"

	"boxrent/internal/domain/booking"
	"boxrent/internal/infra/db"
	"boxrent/internal/usecase/shared"
)

const defaultQueueSize = 256

// Recorder persists stored-vs-derived status divergences observed on
// the read path. Updates are applied with a guarded compare-and-set, so
// a booking that moved on between observation and write-back is left
// alone. The queue drops when full; readers never wait on it.
type Recorder struct {
	uow     shared.UnitOfWork
	repo    shared.BookingRepository
	logger  *slog.Logger
	updates chan booking.StatusUpdate

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewRecorder(uow shared.UnitOfWork, repo shared.BookingRepository, logger *slog.Logger) *Recorder {
	return &Recorder{
		uow:     uow,
		repo:    repo,
		logger:  logger,
		updates: make(chan booking.StatusUpdate, defaultQueueSize),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Record queues an update without blocking. A full queue means the
// writer fell behind; the update is dropped because the next read of
// the same booking will observe the divergence again.
func (r *Recorder) Record(update booking.StatusUpdate) {
	select {
	case r.updates <- update:
	default:
		r.logger.Warn("status recorder queue full, dropping update",
			"booking_id", update.BookingID,
			"from", update.From.String(),
			"to", update.To.String())
	}
}

func (r *Recorder) Start() {
	go r.run()
}

// Stop drains nothing: queued updates are advisory and regenerate on
// the next read.
func (r *Recorder) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)
	for {
		select {
		case <-r.stop:
			return
		case update := <-r.updates:
			r.apply(update)
		}
	}
}

func (r *Recorder) apply(update booking.StatusUpdate) {
	ctx := context.Background()
	err := r.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		affected, err := r.repo.CompareAndSetStatus(ctx, dbtx, update.BookingID, update.From, update.To)
		if err != nil {
			return err
		}
		if affected == 0 {
			r.logger.Debug("status update stale, skipped",
				"booking_id", update.BookingID,
				"from", update.From.String(),
				"to", update.To.String())
		}
		return nil
	})
	if err != nil {
		r.logger.Error("failed to persist status update",
			"booking_id", update.BookingID,
			"from", update.From.String(),
			"to", update.To.String(),
			"error", err.Error())
	}
}
