//go:build unit

package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"boxrent/internal/domain/booking"
	"boxrent/internal/infra"
	"boxrent/internal/pkg/clock"
	"boxrent/internal/pkg/errs"
	"boxrent/internal/usecase/queries"
	queriesmock "boxrent/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityQueriesTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockReadStore *queriesmock.MockAvailabilityReadStore
	mockRecorder  *queriesmock.MockStatusRecorder
	clk           *clock.MockClock
	queries       queries.AvailabilityQueries

	boxID      uuid.UUID
	locationID uuid.UUID
}

func TestAvailabilityQueriesSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityQueriesTestSuite))
}

func (s *AvailabilityQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockReadStore = queriesmock.NewMockAvailabilityReadStore(s.mockCtrl)
	s.mockRecorder = queriesmock.NewMockStatusRecorder(s.mockCtrl)
	s.clk = clock.NewMockClock(time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.queries = queries.NewAvailabilityQueries(s.mockReadStore, s.mockRecorder, s.clk, logger)

	s.boxID = uuid.New()
	s.locationID = uuid.New()
}

func (s *AvailabilityQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *AvailabilityQueriesTestSuite) window(status string, start, end time.Time) queries.BookingWindow {
	return queries.BookingWindow{
		BookingID: uuid.New(),
		Status:    status,
		StartsAt:  start,
		EndsAt:    end,
	}
}

func (s *AvailabilityQueriesTestSuite) expectBox() {
	s.mockReadStore.EXPECT().
		FindBox(gomock.Any(), s.boxID).
		Return(&queries.BoxView{ID: s.boxID, Model: "classic-320", Status: "active"}, nil)
}

func (s *AvailabilityQueriesTestSuite) TestCheckBoxAvailability() {
	ctx := context.Background()

	s.Run("inverted window is rejected before any read", func() {
		from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		window := &queries.DateRange{From: from, To: from.AddDate(0, 0, -3)}

		_, err := s.queries.CheckBoxAvailability(ctx, s.boxID, window)
		s.ErrorIs(err, queries.ErrInvalidWindow)
	})

	s.Run("unknown box", func() {
		s.mockReadStore.EXPECT().
			FindBox(gomock.Any(), s.boxID).
			Return(nil, infra.WrapRepoErr("box not found", nil, infra.KindNotFound))

		_, err := s.queries.CheckBoxAvailability(ctx, s.boxID, nil)
		s.ErrorIs(err, queries.ErrBoxNotFound)
	})

	s.Run("nil window checks every live booking", func() {
		s.expectBox()
		s.mockReadStore.EXPECT().
			BookingWindows(gomock.Any(), s.boxID).
			Return(nil, nil)

		view, err := s.queries.CheckBoxAvailability(ctx, s.boxID, nil)
		s.Require().NoError(err)

		s.True(view.Available)
		s.Zero(view.ConflictCount)
		s.Nil(view.NextFreeAt)
	})

	s.Run("any live booking blocks the open-ended check", func() {
		end := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
		s.expectBox()
		s.mockReadStore.EXPECT().
			BookingWindows(gomock.Any(), s.boxID).
			Return([]queries.BookingWindow{
				s.window("upcoming", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), end),
			}, nil)

		view, err := s.queries.CheckBoxAvailability(ctx, s.boxID, nil)
		s.Require().NoError(err)

		s.False(view.Available)
		s.Equal(1, view.ConflictCount)
		s.Require().NotNil(view.NextFreeAt)
		s.Equal(end, *view.NextFreeAt)
	})

	s.Run("windowed check reports the latest conflicting end", func() {
		window := &queries.DateRange{
			From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		}
		latest := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)
		s.expectBox()
		s.mockReadStore.EXPECT().
			OverlappingWindows(gomock.Any(), s.boxID, window.From, window.To).
			Return([]queries.BookingWindow{
				s.window("upcoming", time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)),
				s.window("upcoming", time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC), latest),
			}, nil)

		view, err := s.queries.CheckBoxAvailability(ctx, s.boxID, window)
		s.Require().NoError(err)

		s.False(view.Available)
		s.Equal(2, view.ConflictCount)
		s.Require().NotNil(view.NextFreeAt)
		s.Equal(latest, *view.NextFreeAt)
	})

	s.Run("stale active booking counts as completed and is reported", func() {
		start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)
		stale := s.window("active", start, end)
		s.expectBox()
		s.mockReadStore.EXPECT().
			BookingWindows(gomock.Any(), s.boxID).
			Return([]queries.BookingWindow{stale}, nil)
		s.mockRecorder.EXPECT().
			Record(booking.StatusUpdate{
				BookingID: stale.BookingID,
				From:      booking.StatusActive,
				To:        booking.StatusCompleted,
			})

		view, err := s.queries.CheckBoxAvailability(ctx, s.boxID, nil)
		s.Require().NoError(err)
		s.True(view.Available)
	})

	s.Run("read store failure is marked", func() {
		s.expectBox()
		s.mockReadStore.EXPECT().
			BookingWindows(gomock.Any(), s.boxID).
			Return(nil, errs.New("connection reset"))

		_, err := s.queries.CheckBoxAvailability(ctx, s.boxID, nil)
		s.True(errs.Is(err, queries.ErrAvailabilityQueryFailed), "got: %v", err)
	})
}

func (s *AvailabilityQueriesTestSuite) expectLocation() {
	s.mockReadStore.EXPECT().
		FindLocation(gomock.Any(), s.locationID).
		Return(&queries.LocationView{ID: s.locationID, Name: "Central"}, nil)
}

func (s *AvailabilityQueriesTestSuite) TestBlockedRangesForModel() {
	ctx := context.Background()

	s.Run("blank model is rejected", func() {
		_, err := s.queries.BlockedRangesForModel(ctx, s.locationID, "  ")
		s.True(errs.Is(err, queries.ErrInvalidModel), "got: %v", err)
	})

	s.Run("unknown location", func() {
		s.mockReadStore.EXPECT().
			FindLocation(gomock.Any(), s.locationID).
			Return(nil, infra.WrapRepoErr("location not found", nil, infra.KindNotFound))

		_, err := s.queries.BlockedRangesForModel(ctx, s.locationID, "classic-320")
		s.ErrorIs(err, queries.ErrLocationNotFound)
	})

	s.Run("windows collapse to date-normalized merged ranges", func() {
		s.expectLocation()
		s.mockReadStore.EXPECT().
			ModelWindows(gomock.Any(), s.locationID, "classic-320").
			Return([]queries.BookingWindow{
				// Adjacent once normalized to days: Jun 1-3 and Jun 4-6.
				s.window("upcoming", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)),
				s.window("upcoming", time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 6, 18, 30, 0, 0, time.UTC)),
				s.window("upcoming", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)),
			}, nil)

		view, err := s.queries.BlockedRangesForModel(ctx, s.locationID, "classic-320")
		s.Require().NoError(err)

		s.Equal(s.locationID, view.LocationID)
		s.Equal("classic-320", view.Model)
		s.Require().Len(view.Ranges, 2)
		s.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), view.Ranges[0].From)
		s.Equal(time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC), view.Ranges[0].To)
		s.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), view.Ranges[1].From)
		s.Equal(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), view.Ranges[1].To)
	})

	s.Run("terminal windows are excluded from the blocks", func() {
		s.expectLocation()
		s.mockReadStore.EXPECT().
			ModelWindows(gomock.Any(), s.locationID, "classic-320").
			Return([]queries.BookingWindow{
				s.window("cancelled", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)),
			}, nil)

		view, err := s.queries.BlockedRangesForModel(ctx, s.locationID, "classic-320")
		s.Require().NoError(err)
		s.Empty(view.Ranges)
	})

	s.Run("no bookings means no blocks", func() {
		s.expectLocation()
		s.mockReadStore.EXPECT().
			ModelWindows(gomock.Any(), s.locationID, "classic-320").
			Return(nil, nil)

		view, err := s.queries.BlockedRangesForModel(ctx, s.locationID, "classic-320")
		s.Require().NoError(err)
		s.Empty(view.Ranges)
	})
}
