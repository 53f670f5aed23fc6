//go:build unit

package commands_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"boxrent/internal/domain/booking"
	"boxrent/internal/domain/user"
	"boxrent/internal/infra"
	"boxrent/internal/infra/db"
	"boxrent/internal/pkg/clock"
	"boxrent/internal/pkg/errs"
	"boxrent/internal/usecase/commands"
	"boxrent/internal/usecase/shared"
	"boxrent/tests/common/paymenttest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// fakeStore backs the unit-of-work interfaces with plain maps so the
// extension flow can be exercised without a database. Reads hand out
// copies; writes mutate the maps in place.
type fakeStore struct {
	boxes    map[uuid.UUID]*shared.BoxSnapshot
	bookings map[uuid.UUID]*shared.BookingSnapshot
	payments map[string]*shared.PaymentSnapshot
	jobs     []fakeJob

	moveErr   error
	extendErr error
}

type fakeJob struct {
	kind    string
	topic   string
	payload []byte
	runAt   time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		boxes:    make(map[uuid.UUID]*shared.BoxSnapshot),
		bookings: make(map[uuid.UUID]*shared.BookingSnapshot),
		payments: make(map[string]*shared.PaymentSnapshot),
	}
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func (f *fakeStore) BoxByID(_ context.Context, id uuid.UUID) (*shared.BoxSnapshot, error) {
	snap, ok := f.boxes[id]
	if !ok {
		return nil, notFound("box not found")
	}
	cp := *snap
	return &cp, nil
}

func (f *fakeStore) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	snap, ok := f.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	cp := *snap
	return &cp, nil
}

func (f *fakeStore) BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	return f.BookingByID(ctx, id)
}

func (f *fakeStore) ActiveSiblings(_ context.Context, standID uuid.UUID, model string, excludeBoxID uuid.UUID) ([]*shared.BoxSnapshot, error) {
	var siblings []*shared.BoxSnapshot
	for _, b := range f.boxes {
		if b.ID == excludeBoxID || b.StandID != standID || b.Model != model || b.Status != "active" {
			continue
		}
		cp := *b
		siblings = append(siblings, &cp)
	}
	sort.Slice(siblings, func(i, j int) bool {
		if siblings[i].Score != siblings[j].Score {
			return siblings[i].Score < siblings[j].Score
		}
		return siblings[i].ID.String() < siblings[j].ID.String()
	})
	return siblings, nil
}

func (f *fakeStore) OverlappingBookings(_ context.Context, boxID uuid.UUID, from, to time.Time, excludeBookingID uuid.UUID) ([]*shared.BookingSnapshot, error) {
	var out []*shared.BookingSnapshot
	for _, b := range f.bookings {
		if b.ID == excludeBookingID || b.BoxID != boxID {
			continue
		}
		if booking.Status(b.Status).IsTerminal() {
			continue
		}
		if b.StartsAt.After(to) || b.EndsAt.Before(from) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStore) IdempotencyByKey(_ context.Context, _, _ uuid.UUID) (*shared.IdempotencyRecord, error) {
	return nil, notFound("idempotency key not found")
}

func (f *fakeStore) PaymentByProviderRef(_ context.Context, providerRef string) (*shared.PaymentSnapshot, error) {
	snap, ok := f.payments[providerRef]
	if !ok {
		return nil, notFound("payment not found")
	}
	cp := *snap
	return &cp, nil
}

func (f *fakeStore) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	id := uuid.New()
	f.bookings[id] = &shared.BookingSnapshot{
		ID:       id,
		BoxID:    b.BoxID(),
		UserID:   b.UserID(),
		StartsAt: b.Period().Start(),
		EndsAt:   b.Period().End(),
		Status:   b.Status().String(),
	}
	return id, nil
}

func (f *fakeStore) ExtendPeriod(_ context.Context, _ db.DBTX, id uuid.UUID, newEnd time.Time, addedCents int64, paymentID uuid.UUID) error {
	if f.extendErr != nil {
		return f.extendErr
	}
	snap, ok := f.bookings[id]
	if !ok {
		return notFound("booking not found")
	}
	snap.EndsAt = newEnd
	snap.ExtensionCount++
	snap.ExtendedAmountCents += addedCents
	pid := paymentID
	snap.PaymentID = &pid
	return nil
}

func (f *fakeStore) MoveToBox(_ context.Context, _ db.DBTX, id, toBoxID uuid.UUID) error {
	if f.moveErr != nil {
		return f.moveErr
	}
	snap, ok := f.bookings[id]
	if !ok {
		return notFound("booking not found")
	}
	snap.BoxID = toBoxID
	return nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, to booking.Status) error {
	snap, ok := f.bookings[id]
	if !ok {
		return notFound("booking not found")
	}
	snap.Status = to.String()
	return nil
}

func (f *fakeStore) CompareAndSetStatus(_ context.Context, _ db.DBTX, id uuid.UUID, from, to booking.Status) (int64, error) {
	snap, ok := f.bookings[id]
	if !ok || snap.Status != from.String() {
		return 0, nil
	}
	snap.Status = to.String()
	return 1, nil
}

func (f *fakeStore) FindOrCreate(_ context.Context, _ db.DBTX, p shared.NewPayment) (uuid.UUID, bool, error) {
	if existing, ok := f.payments[p.ProviderRef]; ok {
		return existing.ID, false, nil
	}
	id := uuid.New()
	f.payments[p.ProviderRef] = &shared.PaymentSnapshot{
		ID:          id,
		BookingID:   p.BookingID,
		ProviderRef: p.ProviderRef,
		Kind:        p.Kind,
		AmountCents: p.AmountCents,
		Currency:    p.Currency,
		Status:      p.Status,
	}
	return id, true, nil
}

func (f *fakeStore) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	f.jobs = append(f.jobs, fakeJob{kind: kind, topic: topic, payload: payload, runAt: runAt})
	return nil
}

type fakeTx struct {
	store *fakeStore
}

func (t fakeTx) Bookings() shared.BookingRepository          { return t.store }
func (t fakeTx) Payments() shared.PaymentRepository          { return t.store }
func (t fakeTx) Idempotency() shared.IdempotencyRepository   { return nil }
func (t fakeTx) Notifications() shared.NotificationRepository { return t.store }
func (t fakeTx) Users() shared.UserRepository                { return nil }
func (t fakeTx) Reads() shared.CommandReads                  { return t.store }
func (t fakeTx) DB() db.DBTX                                 { return nil }

type fakeUoW struct {
	store *fakeStore
}

func (u fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, fakeTx{store: u.store})
}

func (u fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, d db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, d db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u fakeUoW) CommandReads() shared.CommandReads { return u.store }

type ExtensionCommandsTestSuite struct {
	suite.Suite
	store   *fakeStore
	gateway *paymenttest.FakeGateway
	clk     *clock.MockClock
	cmds    commands.ExtensionCommands

	standID   uuid.UUID
	boxA      uuid.UUID // rented box, score 10
	boxB      uuid.UUID // sibling, score 20
	boxC      uuid.UUID // sibling, score 5
	ownerID   uuid.UUID
	bookingID uuid.UUID

	currentEnd time.Time
	newEnd     time.Time
}

func TestExtensionCommandsSuite(t *testing.T) {
	suite.Run(t, new(ExtensionCommandsTestSuite))
}

func (s *ExtensionCommandsTestSuite) SetupTest() {
	s.store = newFakeStore()
	s.gateway = paymenttest.NewFakeGateway()
	s.clk = clock.NewMockClock(time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC))
	s.cmds = commands.NewExtensionCommands(fakeUoW{store: s.store}, s.gateway, booking.NewStandardPricer(), "usd", s.clk)

	s.standID = uuid.New()
	s.boxA = s.addBox(10, "active")
	s.boxB = s.addBox(20, "active")
	s.boxC = s.addBox(5, "active")

	s.ownerID = uuid.New()
	s.currentEnd = time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	s.newEnd = time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	s.bookingID = s.addBooking(s.boxA, s.ownerID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), s.currentEnd, "confirmed")
}

func (s *ExtensionCommandsTestSuite) addBox(score int32, status string) uuid.UUID {
	id := uuid.New()
	s.store.boxes[id] = &shared.BoxSnapshot{
		ID:             id,
		StandID:        s.standID,
		Model:          "classic-320",
		Status:         status,
		Score:          score,
		DailyRateCents: 12000,
	}
	return id
}

func (s *ExtensionCommandsTestSuite) addBooking(boxID, userID uuid.UUID, start, end time.Time, status string) uuid.UUID {
	id := uuid.New()
	s.store.bookings[id] = &shared.BookingSnapshot{
		ID:       id,
		BoxID:    boxID,
		UserID:   userID,
		StartsAt: start,
		EndsAt:   end,
		Status:   status,
	}
	return id
}

func (s *ExtensionCommandsTestSuite) settledIntent(id string, amountCents int64) *commands.PaymentIntent {
	return &commands.PaymentIntent{
		ID:          id,
		Status:      commands.IntentStatusSucceeded,
		AmountCents: amountCents,
		Currency:    "usd",
		Metadata: map[string]string{
			commands.IntentMetaBookingID: s.bookingID.String(),
			commands.IntentMetaNewEnd:    s.newEnd.UTC().Format(time.RFC3339),
			commands.IntentMetaKind:      commands.IntentKindExtension,
		},
	}
}

func (s *ExtensionCommandsTestSuite) TestQuote() {
	ctx := context.Background()
	viewer := user.RoleViewer.String()

	s.Run("prices the added days against the box rate", func() {
		quote, err := s.cmds.Quote(ctx, s.bookingID, s.ownerID, viewer, s.newEnd)
		s.Require().NoError(err)

		s.Equal(s.bookingID, quote.BookingID)
		s.Equal(s.currentEnd, quote.CurrentEnd)
		s.Equal(s.newEnd, quote.NewEnd)
		s.Equal(3, quote.AdditionalDays)
		s.Equal(int64(36000), quote.AmountCents)
		s.Equal("usd", quote.Currency)
	})

	s.Run("partial day rounds up", func() {
		quote, err := s.cmds.Quote(ctx, s.bookingID, s.ownerID, viewer, s.currentEnd.Add(49*time.Hour))
		s.Require().NoError(err)

		s.Equal(3, quote.AdditionalDays)
		s.Equal(int64(36000), quote.AmountCents)
	})

	s.Run("operator can quote another user's booking", func() {
		_, err := s.cmds.Quote(ctx, s.bookingID, uuid.New(), user.RoleOperator.String(), s.newEnd)
		s.NoError(err)
	})

	s.Run("viewer cannot quote another user's booking", func() {
		_, err := s.cmds.Quote(ctx, s.bookingID, uuid.New(), viewer, s.newEnd)
		s.ErrorIs(err, commands.ErrBookingAccess)
	})

	s.Run("new end must pass the current end", func() {
		_, err := s.cmds.Quote(ctx, s.bookingID, s.ownerID, viewer, s.currentEnd)
		s.ErrorIs(err, commands.ErrInvalidExtensionWindow)
	})

	s.Run("unknown booking", func() {
		_, err := s.cmds.Quote(ctx, uuid.New(), s.ownerID, viewer, s.newEnd)
		s.ErrorIs(err, commands.ErrBookingNotFound)
	})

	s.Run("cancelled booking cannot be extended", func() {
		cancelled := s.addBooking(s.boxB, s.ownerID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), s.currentEnd, "cancelled")

		_, err := s.cmds.Quote(ctx, cancelled, s.ownerID, viewer, s.newEnd)
		s.True(errs.Is(err, commands.ErrExtensionNotAllowed), "got: %v", err)
	})
}

func (s *ExtensionCommandsTestSuite) TestInitiate() {
	ctx := context.Background()
	viewer := user.RoleViewer.String()

	s.Run("opens an intent for the quoted amount", func() {
		result, err := s.cmds.Initiate(ctx, s.bookingID, s.ownerID, viewer, s.newEnd)
		s.Require().NoError(err)

		s.NotEmpty(result.PaymentIntentID)
		s.NotEmpty(result.ClientSecret)
		s.Equal(int64(36000), result.Quote.AmountCents)

		intent, err := s.gateway.GetIntent(ctx, result.PaymentIntentID)
		s.Require().NoError(err)
		s.Equal(int64(36000), intent.AmountCents)
		s.Equal(s.bookingID.String(), intent.Metadata[commands.IntentMetaBookingID])
		s.Equal(commands.IntentKindExtension, intent.Metadata[commands.IntentMetaKind])
	})

	s.Run("quote failure skips the gateway", func() {
		_, err := s.cmds.Initiate(ctx, s.bookingID, s.ownerID, viewer, s.currentEnd)
		s.ErrorIs(err, commands.ErrInvalidExtensionWindow)
	})

	s.Run("gateway failure is marked", func() {
		s.gateway.CreateErr = errs.New("provider unreachable")

		_, err := s.cmds.Initiate(ctx, s.bookingID, s.ownerID, viewer, s.newEnd)
		s.True(errs.Is(err, commands.ErrPaymentGatewayFailed), "got: %v", err)
	})
}

func (s *ExtensionCommandsTestSuite) TestCompleteAppliesExtension() {
	ctx := context.Background()
	s.gateway.Register(s.settledIntent("pi_settled", 36000))

	result, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, user.RoleViewer.String(), "pi_settled")
	s.Require().NoError(err)

	s.Equal(s.bookingID, result.BookingID)
	s.Equal(s.newEnd, result.NewEnd)
	s.Equal(int64(36000), result.AmountCents)
	s.False(result.IsReplayed)
	s.Empty(result.Reassignments)

	snap := s.store.bookings[s.bookingID]
	s.Equal(s.newEnd, snap.EndsAt)
	s.Equal(int32(1), snap.ExtensionCount)
	s.Equal(int64(36000), snap.ExtendedAmountCents)
	s.Require().NotNil(snap.PaymentID)
	s.Equal(result.PaymentID, *snap.PaymentID)

	payment := s.store.payments["pi_settled"]
	s.Require().NotNil(payment)
	s.Equal(s.bookingID, payment.BookingID)
	s.Equal(commands.IntentKindExtension, payment.Kind)
	s.Empty(s.store.jobs)
}

func (s *ExtensionCommandsTestSuite) TestCompleteReassignsConflicts() {
	ctx := context.Background()
	otherUser := uuid.New()
	conflictStart := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	conflictEnd := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	s.Run("displaced booking lands on the lowest-score sibling", func() {
		conflict := s.addBooking(s.boxA, otherUser, conflictStart, conflictEnd, "upcoming")
		s.gateway.Register(s.settledIntent("pi_move", 36000))

		result, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, user.RoleViewer.String(), "pi_move")
		s.Require().NoError(err)

		s.Require().Len(result.Reassignments, 1)
		move := result.Reassignments[0]
		s.Equal(conflict, move.BookingID)
		s.Equal(s.boxA, move.FromBoxID)
		s.Equal(s.boxC, move.ToBoxID)
		s.Equal(s.boxC, s.store.bookings[conflict].BoxID)

		s.Require().Len(s.store.jobs, 1)
		s.Equal("booking_reassigned", s.store.jobs[0].kind)
		s.Equal(otherUser.String(), s.store.jobs[0].topic)
		s.Equal(s.clk.Now(), s.store.jobs[0].runAt)
	})

	s.Run("busy sibling is skipped for the next by score", func() {
		s.SetupTest()
		s.addBooking(s.boxC, uuid.New(), conflictStart, conflictEnd, "upcoming")
		s.addBooking(s.boxA, otherUser, conflictStart, conflictEnd, "upcoming")
		s.gateway.Register(s.settledIntent("pi_skip", 36000))

		result, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, user.RoleViewer.String(), "pi_skip")
		s.Require().NoError(err)

		s.Require().Len(result.Reassignments, 1)
		s.Equal(s.boxB, result.Reassignments[0].ToBoxID)
	})

	s.Run("cancelled overlaps do not displace anything", func() {
		s.SetupTest()
		s.addBooking(s.boxA, otherUser, conflictStart, conflictEnd, "cancelled")
		s.gateway.Register(s.settledIntent("pi_dead", 36000))

		result, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, user.RoleViewer.String(), "pi_dead")
		s.Require().NoError(err)
		s.Empty(result.Reassignments)
	})

	s.Run("no free sibling fails the whole extension", func() {
		s.SetupTest()
		s.addBooking(s.boxA, otherUser, conflictStart, conflictEnd, "upcoming")
		s.addBooking(s.boxB, uuid.New(), conflictStart, conflictEnd, "upcoming")
		s.addBooking(s.boxC, uuid.New(), conflictStart, conflictEnd, "upcoming")
		s.gateway.Register(s.settledIntent("pi_stuck", 36000))

		_, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, user.RoleViewer.String(), "pi_stuck")
		s.ErrorIs(err, commands.ErrNoReassignment)
		s.Equal(s.currentEnd, s.store.bookings[s.bookingID].EndsAt)
	})

	s.Run("moves planned in the same pass block each other", func() {
		s.SetupTest()
		s.store.boxes[s.boxB].Status = "maintenance"
		s.addBooking(s.boxA, otherUser, conflictStart, time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC), "upcoming")
		s.addBooking(s.boxA, uuid.New(), time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC), conflictEnd, "upcoming")
		s.gateway.Register(s.settledIntent("pi_pair", 36000))

		_, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, user.RoleViewer.String(), "pi_pair")
		s.ErrorIs(err, commands.ErrNoReassignment)
	})
}

func (s *ExtensionCommandsTestSuite) TestCompleteIsIdempotent() {
	ctx := context.Background()
	s.gateway.Register(s.settledIntent("pi_once", 36000))

	first, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, user.RoleViewer.String(), "pi_once")
	s.Require().NoError(err)
	s.False(first.IsReplayed)

	replay, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, user.RoleViewer.String(), "pi_once")
	s.Require().NoError(err)

	s.True(replay.IsReplayed)
	s.Equal(first.PaymentID, replay.PaymentID)
	s.Equal(s.newEnd, replay.NewEnd)

	// The second call must not stack another extension on top.
	snap := s.store.bookings[s.bookingID]
	s.Equal(int32(1), snap.ExtensionCount)
	s.Equal(int64(36000), snap.ExtendedAmountCents)
}

func (s *ExtensionCommandsTestSuite) TestCompleteRejectsBadIntents() {
	ctx := context.Background()
	viewer := user.RoleViewer.String()

	s.Run("unsettled intent", func() {
		intent := s.settledIntent("pi_open", 36000)
		intent.Status = "requires_payment_method"
		s.gateway.Register(intent)

		_, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, viewer, "pi_open")
		s.ErrorIs(err, commands.ErrPaymentNotSettled)
	})

	s.Run("intent for a different booking", func() {
		intent := s.settledIntent("pi_other", 36000)
		intent.Metadata[commands.IntentMetaBookingID] = uuid.NewString()
		s.gateway.Register(intent)

		_, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, viewer, "pi_other")
		s.ErrorIs(err, commands.ErrPaymentMismatch)
	})

	s.Run("amount below the live quote", func() {
		s.gateway.Register(s.settledIntent("pi_cheap", 1000))

		_, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, viewer, "pi_cheap")
		s.ErrorIs(err, commands.ErrPaymentMismatch)
		s.Equal(s.currentEnd, s.store.bookings[s.bookingID].EndsAt)
	})

	s.Run("currency divergence", func() {
		intent := s.settledIntent("pi_eur", 36000)
		intent.Currency = "eur"
		s.gateway.Register(intent)

		_, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, viewer, "pi_eur")
		s.ErrorIs(err, commands.ErrPaymentMismatch)
	})

	s.Run("malformed new end metadata", func() {
		intent := s.settledIntent("pi_garbage", 36000)
		intent.Metadata[commands.IntentMetaNewEnd] = "next tuesday"
		s.gateway.Register(intent)

		_, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, viewer, "pi_garbage")
		s.ErrorIs(err, commands.ErrPaymentMismatch)
	})

	s.Run("gateway lookup failure", func() {
		s.gateway.GetErr = errs.New("provider unreachable")

		_, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, viewer, "pi_whatever")
		s.True(errs.Is(err, commands.ErrPaymentGatewayFailed), "got: %v", err)
	})
}

func (s *ExtensionCommandsTestSuite) TestCompleteSurfacesWriteConflicts() {
	ctx := context.Background()
	s.store.extendErr = infra.WrapRepoErr("exclusion violated", nil, infra.KindConflict)
	s.gateway.Register(s.settledIntent("pi_race", 36000))

	_, err := s.cmds.Complete(ctx, s.bookingID, s.ownerID, user.RoleViewer.String(), "pi_race")
	s.ErrorIs(err, commands.ErrBookingConflict)
}
