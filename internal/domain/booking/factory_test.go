//go:build unit

package booking_test

import (
	"testing"
	"time"

	"boxrent/internal/domain/booking"
	"boxrent/internal/domain/box"
	"boxrent/internal/pkg/clock"
	"boxrent/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_NewBooking(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	factory := booking.NewFactory(clock.NewMockClock(now))
	userID := uuid.New()

	period := func(t *testing.T, start, end time.Time) booking.Period {
		t.Helper()
		p, err := booking.NewPeriod(start, end)
		require.NoError(t, err)
		return p
	}

	t.Run("future start stores upcoming", func(t *testing.T) {
		bx, err := builder.NewBoxBuilder().BuildDomain()
		require.NoError(t, err)

		b, err := factory.NewBooking(bx, userID, period(t, now.Add(time.Hour), now.Add(48*time.Hour)))
		require.NoError(t, err)

		assert.Equal(t, booking.StatusUpcoming, b.Status())
		assert.Equal(t, bx.ID(), b.BoxID())
		assert.Equal(t, userID, b.UserID())
	})

	t.Run("start at now stores active", func(t *testing.T) {
		bx, err := builder.NewBoxBuilder().BuildDomain()
		require.NoError(t, err)

		b, err := factory.NewBooking(bx, userID, period(t, now, now.Add(48*time.Hour)))
		require.NoError(t, err)

		assert.Equal(t, booking.StatusActive, b.Status())
	})

	t.Run("past start is rejected", func(t *testing.T) {
		bx, err := builder.NewBoxBuilder().BuildDomain()
		require.NoError(t, err)

		_, err = factory.NewBooking(bx, userID, period(t, now.Add(-time.Hour), now.Add(48*time.Hour)))
		assert.ErrorIs(t, err, booking.ErrStartInPast)
	})

	t.Run("unrentable box is rejected", func(t *testing.T) {
		bx, err := builder.NewBoxBuilder().WithStatus("maintenance").BuildDomain()
		require.NoError(t, err)

		_, err = factory.NewBooking(bx, userID, period(t, now.Add(time.Hour), now.Add(48*time.Hour)))
		assert.ErrorIs(t, err, box.ErrBoxNotRentable)
	})
}
