package commands

import (
	"context"
	"encoding/json"
	"time"

	"boxrent/internal/domain/booking"
	"boxrent/internal/domain/user"
	"boxrent/internal/infra"
	"boxrent/internal/pkg/clock"
	"boxrent/internal/pkg/errs"
	"boxrent/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidExtensionWindow = errs.New("invalid extension window")
	ErrInvalidExtensionAmount = errs.New("invalid extension amount")
	ErrExtensionNotAllowed    = errs.New("extension not allowed")
	ErrNoReassignment         = errs.New("no reassignment available")
	ErrPaymentNotSettled      = errs.New("payment not settled")
	ErrPaymentMismatch        = errs.New("payment does not match quote")
	ErrPaymentGatewayFailed   = errs.New("payment gateway failed")
)

type ExtensionQuote struct {
	BookingID      uuid.UUID
	CurrentEnd     time.Time
	NewEnd         time.Time
	AdditionalDays int
	AmountCents    int64
	Currency       string
}

type InitiateExtensionResult struct {
	Quote           *ExtensionQuote
	PaymentIntentID string
	ClientSecret    string
}

type BoxReassignment struct {
	BookingID uuid.UUID
	FromBoxID uuid.UUID
	ToBoxID   uuid.UUID
	StartsAt  time.Time
	EndsAt    time.Time
}

type ExtensionResult struct {
	BookingID     uuid.UUID
	NewEnd        time.Time
	AmountCents   int64
	PaymentID     uuid.UUID
	Reassignments []BoxReassignment
	IsReplayed    bool
}

type ExtensionCommands interface {
	// Quote prices an extension without touching anything.
	Quote(ctx context.Context, bookingID, actorID uuid.UUID, actorRole string, newEnd time.Time) (*ExtensionQuote, error)
	// Initiate prices the extension and opens a payment intent for it.
	Initiate(ctx context.Context, bookingID, actorID uuid.UUID, actorRole string, newEnd time.Time) (*InitiateExtensionResult, error)
	// Complete verifies the settled intent and applies the extension,
	// displacing conflicting bookings onto sibling boxes when possible.
	Complete(ctx context.Context, bookingID, actorID uuid.UUID, actorRole string, paymentIntentID string) (*ExtensionResult, error)
}

type extensionCommandsImpl struct {
	uow      shared.UnitOfWork
	gateway  PaymentGateway
	pricer   booking.Pricer
	currency string
	clock    clock.Clock
}

func NewExtensionCommands(uow shared.UnitOfWork, gateway PaymentGateway, pricer booking.Pricer, currency string, clk clock.Clock) ExtensionCommands {
	return &extensionCommandsImpl{
		uow:      uow,
		gateway:  gateway,
		pricer:   pricer,
		currency: currency,
		clock:    clk,
	}
}

func (e *extensionCommandsImpl) Quote(ctx context.Context, bookingID, actorID uuid.UUID, actorRole string, newEnd time.Time) (*ExtensionQuote, error) {
	snap, boxSnap, err := e.loadBookingAndBox(ctx, e.uow.CommandReads(), bookingID, actorID, actorRole, false)
	if err != nil {
		return nil, err
	}
	return e.priceExtension(snap, boxSnap, newEnd)
}

func (e *extensionCommandsImpl) Initiate(ctx context.Context, bookingID, actorID uuid.UUID, actorRole string, newEnd time.Time) (*InitiateExtensionResult, error) {
	quote, err := e.Quote(ctx, bookingID, actorID, actorRole, newEnd)
	if err != nil {
		return nil, err
	}

	intent, err := e.gateway.CreateExtensionIntent(ctx, ExtensionIntentRequest{
		BookingID:   bookingID,
		NewEnd:      quote.NewEnd.UTC().Format(time.RFC3339),
		AmountCents: quote.AmountCents,
		Currency:    quote.Currency,
	})
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentGatewayFailed)
	}

	return &InitiateExtensionResult{
		Quote:           quote,
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
	}, nil
}

func (e *extensionCommandsImpl) Complete(ctx context.Context, bookingID, actorID uuid.UUID, actorRole string, paymentIntentID string) (*ExtensionResult, error) {
	intent, err := e.gateway.GetIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentGatewayFailed)
	}

	newEnd, err := verifyIntent(intent, bookingID)
	if err != nil {
		return nil, err
	}

	var result *ExtensionResult
	err = e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Row-lock the booking so a rival extension of the same booking
		// waits here instead of pricing against a stale end.
		snap, boxSnap, err := e.loadBookingAndBox(ctx, tx.Reads(), bookingID, actorID, actorRole, true)
		if err != nil {
			return err
		}

		paymentID, created, err := tx.Payments().FindOrCreate(ctx, tx.DB(), shared.NewPayment{
			BookingID:   bookingID,
			ProviderRef: intent.ID,
			Kind:        IntentKindExtension,
			AmountCents: intent.AmountCents,
			Currency:    intent.Currency,
			Status:      intent.Status,
		})
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !created {
			// This intent already settled an extension. Report the stored
			// outcome instead of applying it twice.
			result = &ExtensionResult{
				BookingID:   bookingID,
				NewEnd:      snap.EndsAt,
				AmountCents: intent.AmountCents,
				PaymentID:   paymentID,
				IsReplayed:  true,
			}
			return nil
		}

		quote, err := e.priceExtension(snap, boxSnap, newEnd)
		if err != nil {
			return err
		}
		if intent.AmountCents != quote.AmountCents || intent.Currency != quote.Currency {
			return ErrPaymentMismatch
		}

		reassignments, err := e.resolveConflicts(ctx, tx.Reads(), snap, boxSnap, newEnd)
		if err != nil {
			return err
		}

		if err := e.applyExtension(ctx, tx, snap, quote, paymentID, reassignments); err != nil {
			return err
		}

		result = &ExtensionResult{
			BookingID:     bookingID,
			NewEnd:        quote.NewEnd,
			AmountCents:   quote.AmountCents,
			PaymentID:     paymentID,
			Reassignments: reassignments,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *extensionCommandsImpl) loadBookingAndBox(
	ctx context.Context,
	reads shared.CommandReads,
	bookingID, actorID uuid.UUID,
	actorRole string,
	lock bool,
) (*shared.BookingSnapshot, *shared.BoxSnapshot, error) {
	fetch := reads.BookingByID
	if lock {
		fetch = reads.BookingByIDForUpdate
	}
	snap, err := fetch(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrBookingNotFound
		}
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if actorRole == user.RoleViewer.String() && snap.UserID != actorID {
		return nil, nil, ErrBookingAccess
	}

	boxSnap, err := reads.BoxByID(ctx, snap.BoxID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrBoxNotFound
		}
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return snap, boxSnap, nil
}

// priceExtension validates the window against the booking and prices the
// added days. Rejections surface before any payment is opened.
func (e *extensionCommandsImpl) priceExtension(snap *shared.BookingSnapshot, boxSnap *shared.BoxSnapshot, newEnd time.Time) (*ExtensionQuote, error) {
	bookingEntity, err := bookingFromSnapshot(snap)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := bookingEntity.CanExtendAt(e.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrExtensionNotAllowed)
	}

	currentEnd := bookingEntity.Period().End()
	if !newEnd.After(currentEnd) {
		return nil, ErrInvalidExtensionWindow
	}

	days := booking.AdditionalDays(currentEnd, newEnd)
	if days < 1 {
		return nil, ErrInvalidExtensionWindow
	}

	boxEntity, err := boxFromSnapshot(boxSnap)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	amount := e.pricer.ExtensionCents(boxEntity, days)
	if amount <= 0 {
		return nil, ErrInvalidExtensionAmount
	}

	return &ExtensionQuote{
		BookingID:      snap.ID,
		CurrentEnd:     currentEnd,
		NewEnd:         newEnd,
		AdditionalDays: days,
		AmountCents:    amount,
		Currency:       e.currency,
	}, nil
}

// resolveConflicts plans a landing box for every live booking displaced by
// the extension. Each conflict needs a sibling on the same stand with the
// same model that is free over the conflict's own window, counting moves
// already planned in this pass. One unplaceable conflict fails the whole
// resolution.
func (e *extensionCommandsImpl) resolveConflicts(
	ctx context.Context,
	reads shared.CommandReads,
	snap *shared.BookingSnapshot,
	boxSnap *shared.BoxSnapshot,
	newEnd time.Time,
) ([]BoxReassignment, error) {
	now := e.clock.Now()

	overlapping, err := reads.OverlappingBookings(ctx, snap.BoxID, snap.EndsAt, newEnd, snap.ID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	conflicts := liveSnapshots(overlapping, now)
	if len(conflicts) == 0 {
		return nil, nil
	}

	siblings, err := reads.ActiveSiblings(ctx, boxSnap.StandID, boxSnap.Model, boxSnap.ID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	planned := make(map[uuid.UUID][]timeRange)
	reassignments := make([]BoxReassignment, 0, len(conflicts))

	for _, conflict := range conflicts {
		target, err := e.findLandingBox(ctx, reads, siblings, planned, conflict, now)
		if err != nil {
			return nil, err
		}
		if target == uuid.Nil {
			return nil, ErrNoReassignment
		}

		planned[target] = append(planned[target], timeRange{from: conflict.StartsAt, to: conflict.EndsAt})
		reassignments = append(reassignments, BoxReassignment{
			BookingID: conflict.ID,
			FromBoxID: conflict.BoxID,
			ToBoxID:   target,
			StartsAt:  conflict.StartsAt,
			EndsAt:    conflict.EndsAt,
		})
	}

	return reassignments, nil
}

// findLandingBox walks the score-ranked siblings and returns the first one
// free over the conflict's window, or uuid.Nil.
func (e *extensionCommandsImpl) findLandingBox(
	ctx context.Context,
	reads shared.CommandReads,
	siblings []*shared.BoxSnapshot,
	planned map[uuid.UUID][]timeRange,
	conflict *shared.BookingSnapshot,
	now time.Time,
) (uuid.UUID, error) {
	window := timeRange{from: conflict.StartsAt, to: conflict.EndsAt}

	for _, sibling := range siblings {
		if overlapsAny(planned[sibling.ID], window) {
			continue
		}

		busy, err := reads.OverlappingBookings(ctx, sibling.ID, conflict.StartsAt, conflict.EndsAt, conflict.ID)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if len(liveSnapshots(busy, now)) > 0 {
			continue
		}

		return sibling.ID, nil
	}
	return uuid.Nil, nil
}

// applyExtension performs the writes: the extended period, every planned
// move, and a reassignment notification per displaced booking. The caller's
// transaction makes the batch all-or-nothing; the bookings exclusion
// constraint rejects any placement a concurrent writer took first.
func (e *extensionCommandsImpl) applyExtension(
	ctx context.Context,
	tx shared.Tx,
	snap *shared.BookingSnapshot,
	quote *ExtensionQuote,
	paymentID uuid.UUID,
	reassignments []BoxReassignment,
) error {
	for _, move := range reassignments {
		if err := tx.Bookings().MoveToBox(ctx, tx.DB(), move.BookingID, move.ToBoxID); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrBookingConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	if err := tx.Bookings().ExtendPeriod(ctx, tx.DB(), snap.ID, quote.NewEnd, quote.AmountCents, paymentID); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return ErrBookingConflict
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	for _, move := range reassignments {
		payload, err := json.Marshal(map[string]any{
			"booking_id":  move.BookingID,
			"from_box_id": move.FromBoxID,
			"to_box_id":   move.ToBoxID,
			"starts_at":   move.StartsAt,
			"ends_at":     move.EndsAt,
		})
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		ownerSnap, err := tx.Reads().BookingByID(ctx, move.BookingID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Notifications().CreateJob(ctx, tx.DB(), "booking_reassigned", ownerSnap.UserID.String(), payload, e.clock.Now()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	return nil
}

func verifyIntent(intent *PaymentIntent, bookingID uuid.UUID) (time.Time, error) {
	if intent.Status != IntentStatusSucceeded {
		return time.Time{}, ErrPaymentNotSettled
	}
	if intent.Metadata[IntentMetaKind] != IntentKindExtension {
		return time.Time{}, ErrPaymentMismatch
	}
	if intent.Metadata[IntentMetaBookingID] != bookingID.String() {
		return time.Time{}, ErrPaymentMismatch
	}
	newEnd, err := time.Parse(time.RFC3339, intent.Metadata[IntentMetaNewEnd])
	if err != nil {
		return time.Time{}, ErrPaymentMismatch
	}
	return newEnd, nil
}

type timeRange struct {
	from time.Time
	to   time.Time
}

func (r timeRange) overlaps(other timeRange) bool {
	return !r.from.After(other.to) && !r.to.Before(other.from)
}

func overlapsAny(ranges []timeRange, window timeRange) bool {
	for _, r := range ranges {
		if r.overlaps(window) {
			return true
		}
	}
	return false
}

func liveSnapshots(snaps []*shared.BookingSnapshot, now time.Time) []*shared.BookingSnapshot {
	live := make([]*shared.BookingSnapshot, 0, len(snaps))
	for _, s := range snaps {
		status := booking.Status(s.Status)
		if !status.IsValid() {
			continue
		}
		if booking.EffectiveStatus(status, s.StartsAt, s.EndsAt, now).IsTerminal() {
			continue
		}
		live = append(live, s)
	}
	return live
}
