package queries

import (
	"context"
	"log/slog"
	"time"

	"boxrent/internal/domain/booking"
	"boxrent/internal/domain/box"
	"boxrent/internal/domain/schedule"
	"boxrent/internal/infra"
	"boxrent/internal/pkg/clock"
	"boxrent/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBoxNotFound             = errs.New("box not found")
	ErrLocationNotFound        = errs.New("location not found")
	ErrInvalidWindow           = errs.New("invalid availability window")
	ErrInvalidModel            = errs.New("invalid box model")
	ErrAvailabilityQueryFailed = errs.New("availability query failed")
)

type AvailabilityQueries interface {
	// CheckBoxAvailability reports whether the box can take a new booking.
	// With a nil window the box counts as available only when it carries no
	// live booking at all.
	CheckBoxAvailability(ctx context.Context, boxID uuid.UUID, window *DateRange) (*AvailabilityView, error)
	// BlockedRangesForModel returns the merged, date-normalized busy ranges
	// across all rentable boxes of the model at the location.
	BlockedRangesForModel(ctx context.Context, locationID uuid.UUID, model string) (*BlockedRangesView, error)
}

type AvailabilityReadStore interface {
	FindBox(ctx context.Context, id uuid.UUID) (*BoxView, error)
	FindLocation(ctx context.Context, id uuid.UUID) (*LocationView, error)
	// BookingWindows returns all bookings on the box whose stored status is
	// not terminal.
	BookingWindows(ctx context.Context, boxID uuid.UUID) ([]BookingWindow, error)
	// OverlappingWindows restricts BookingWindows to periods touching
	// [from, to], endpoints inclusive.
	OverlappingWindows(ctx context.Context, boxID uuid.UUID, from, to time.Time) ([]BookingWindow, error)
	// ModelWindows returns live booking windows across every rentable box of
	// the model at the location.
	ModelWindows(ctx context.Context, locationID uuid.UUID, model string) ([]BookingWindow, error)
}

type availabilityQueriesImpl struct {
	readStore AvailabilityReadStore
	recorder  StatusRecorder
	clock     clock.Clock
	logger    *slog.Logger
}

func NewAvailabilityQueries(readStore AvailabilityReadStore, recorder StatusRecorder, clk clock.Clock, logger *slog.Logger) AvailabilityQueries {
	return &availabilityQueriesImpl{
		readStore: readStore,
		recorder:  recorder,
		clock:     clk,
		logger:    logger,
	}
}

func (q *availabilityQueriesImpl) CheckBoxAvailability(ctx context.Context, boxID uuid.UUID, window *DateRange) (*AvailabilityView, error) {
	if window != nil && window.From.After(window.To) {
		return nil, ErrInvalidWindow
	}

	if _, err := q.readStore.FindBox(ctx, boxID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBoxNotFound
		}
		return nil, errs.Mark(err, ErrAvailabilityQueryFailed)
	}

	var (
		windows []BookingWindow
		err     error
	)
	if window == nil {
		windows, err = q.readStore.BookingWindows(ctx, boxID)
	} else {
		windows, err = q.readStore.OverlappingWindows(ctx, boxID, window.From, window.To)
	}
	if err != nil {
		return nil, errs.Mark(err, ErrAvailabilityQueryFailed)
	}

	conflicts := q.liveWindows(windows)

	view := &AvailabilityView{
		BoxID:         boxID,
		Available:     len(conflicts) == 0,
		ConflictCount: len(conflicts),
	}
	if len(conflicts) > 0 {
		latest := conflicts[0].EndsAt
		for _, w := range conflicts[1:] {
			if w.EndsAt.After(latest) {
				latest = w.EndsAt
			}
		}
		view.NextFreeAt = &latest
	}

	return view, nil
}

func (q *availabilityQueriesImpl) BlockedRangesForModel(ctx context.Context, locationID uuid.UUID, model string) (*BlockedRangesView, error) {
	if _, err := box.NewModel(model); err != nil {
		return nil, errs.Mark(err, ErrInvalidModel)
	}

	if _, err := q.readStore.FindLocation(ctx, locationID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, errs.Mark(err, ErrAvailabilityQueryFailed)
	}

	windows, err := q.readStore.ModelWindows(ctx, locationID, model)
	if err != nil {
		return nil, errs.Mark(err, ErrAvailabilityQueryFailed)
	}

	live := q.liveWindows(windows)

	intervals := make([]schedule.Interval, 0, len(live))
	for _, w := range live {
		intervals = append(intervals, schedule.FromRange(w.StartsAt, w.EndsAt))
	}
	merged := schedule.Merge(intervals)

	q.logger.Info("blocked ranges computed",
		"location_id", locationID,
		"model", model,
		"raw_count", len(live),
		"merged_count", len(merged),
	)

	ranges := make([]DateRange, 0, len(merged))
	for _, iv := range merged {
		ranges = append(ranges, DateRange{From: iv.From, To: iv.To})
	}

	return &BlockedRangesView{
		LocationID: locationID,
		Model:      model,
		Ranges:     ranges,
	}, nil
}

// liveWindows drops rows whose derived status is terminal and reports the
// divergence for write-back.
func (q *availabilityQueriesImpl) liveWindows(windows []BookingWindow) []BookingWindow {
	now := q.clock.Now()
	live := make([]BookingWindow, 0, len(windows))
	for _, w := range windows {
		stored := booking.Status(w.Status)
		if !stored.IsValid() {
			continue
		}
		effective := booking.EffectiveStatus(stored, w.StartsAt, w.EndsAt, now)
		if effective != stored && q.recorder != nil {
			q.recorder.Record(booking.StatusUpdate{BookingID: w.BookingID, From: stored, To: effective})
		}
		if effective.IsTerminal() {
			continue
		}
		live = append(live, w)
	}
	return live
}
