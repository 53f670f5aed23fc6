package queries

import (
	"context"
	"time"

	"boxrent/internal/domain/booking"
	"boxrent/internal/domain/user"
	"boxrent/internal/infra"
	"boxrent/internal/pkg/clock"
	"boxrent/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound    = errs.New("booking not found")
	ErrBookingAccess      = errs.New("booking access denied")
	ErrBookingQueryFailed = errs.New("booking query failed")
)

// StatusRecorder receives stored-vs-derived status divergences observed
// during reads. Implementations must not block the calling read path.
type StatusRecorder interface {
	Record(update booking.StatusUpdate)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*BookingListItem, error)
	ListByUserKeyset(ctx context.Context, userID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
	recorder  StatusRecorder
	clock     clock.Clock
}

func NewBookingQueries(readStore BookingReadStore, recorder StatusRecorder, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		readStore: readStore,
		recorder:  recorder,
		clock:     clk,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*BookingView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrBookingQueryFailed)
	}

	if actorRole == user.RoleViewer.String() && view.UserID != actorID {
		return nil, ErrBookingAccess
	}

	view.Status = q.deriveStatus(view.ID, view.Status, view.StartsAt, view.EndsAt)
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		items []*BookingListItem
		err   error
	)
	if cursor == nil || cursor.After == "" {
		items, err = q.readStore.ListByUserFirstPage(ctx, userID, int32(limit)+1)
	} else {
		afterCreatedAt, afterID, decodeErr := DecodeAfterCursor(cursor.After)
		if decodeErr != nil {
			return nil, nil, errs.Mark(decodeErr, ErrBookingQueryFailed)
		}
		items, err = q.readStore.ListByUserKeyset(ctx, userID, afterCreatedAt, afterID, int32(limit)+1)
	}
	if err != nil {
		return nil, nil, errs.Mark(err, ErrBookingQueryFailed)
	}

	var next *Cursor
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}

	for _, it := range items {
		it.Status = q.deriveStatus(it.ID, it.Status, it.StartsAt, it.EndsAt)
	}

	return items, next, nil
}

// deriveStatus resolves the stored status against the booking period and
// hands divergences to the recorder. Reads never fail on a stale status.
func (q *bookingQueriesImpl) deriveStatus(id uuid.UUID, stored string, startsAt, endsAt time.Time) string {
	storedStatus := booking.Status(stored)
	if !storedStatus.IsValid() {
		return stored
	}

	effective := booking.EffectiveStatus(storedStatus, startsAt, endsAt, q.clock.Now())
	if effective != storedStatus && q.recorder != nil {
		q.recorder.Record(booking.StatusUpdate{BookingID: id, From: storedStatus, To: effective})
	}
	return effective.String()
}
