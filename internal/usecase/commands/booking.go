package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"boxrent/internal/domain/booking"
	"boxrent/internal/domain/box"
	"boxrent/internal/domain/user"
	reqdto "boxrent/internal/handler/dto/request"
	"boxrent/internal/infra"
	"boxrent/internal/pkg/clock"
	"boxrent/internal/pkg/errs"
	"boxrent/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBoxNotFound             = errs.New("box not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingAccess           = errs.New("booking access denied")
	ErrBookingConflict         = errs.New("booking conflict")
	ErrDuplicateBooking        = errs.New("duplicate booking request")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const (
	idempotencyStatusProcessing = "processing"
	idempotencyStatusCompleted  = "completed"

	idempotencyTTL = 24 * time.Hour
)

type CreateBookingResult struct {
	BookingID  uuid.UUID
	IsReplayed bool
}

type BookingCommands interface {
	Create(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	Cancel(ctx context.Context, bookingID, actorID uuid.UUID, actorRole string) error
	Confirm(ctx context.Context, bookingID, actorID uuid.UUID, actorRole string) error
}

type bookingCommandsImpl struct {
	uow     shared.UnitOfWork
	factory *booking.Factory
	clock   clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, factory *booking.Factory, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{
		uow:     uow,
		factory: factory,
		clock:   clk,
	}
}

func (c *bookingCommandsImpl) Create(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	requestHash := calculateRequestHash(req)
	expiresAt := c.clock.Now().Add(idempotencyTTL)

	var result *CreateBookingResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayed, err := c.claimIdempotencyKey(ctx, tx, idempotencyKey, userID, requestHash, expiresAt)
		if err != nil {
			return err
		}
		if replayed != nil {
			result = replayed
			return nil
		}

		bookingEntity, err := c.buildBooking(ctx, tx, req, userID)
		if err != nil {
			return err
		}

		bookingID, err := tx.Bookings().Create(ctx, tx.DB(), bookingEntity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrBookingConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := c.enqueueBookingJob(ctx, tx, "booking_created", bookingID, userID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		err = tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, userID, calculateIDHash(bookingID), bookingID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result = &CreateBookingResult{BookingID: bookingID, IsReplayed: false}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID, actorID uuid.UUID, actorRole string) error {
	return c.mutateBooking(ctx, bookingID, actorID, actorRole, func(b *booking.Booking) error {
		return b.Cancel(c.clock.Now())
	})
}

func (c *bookingCommandsImpl) Confirm(ctx context.Context, bookingID, actorID uuid.UUID, actorRole string) error {
	return c.mutateBooking(ctx, bookingID, actorID, actorRole, func(b *booking.Booking) error {
		return b.Confirm(c.clock.Now())
	})
}

// mutateBooking loads the booking, applies the domain transition, and
// persists the resulting status.
func (c *bookingCommandsImpl) mutateBooking(
	ctx context.Context,
	bookingID, actorID uuid.UUID,
	actorRole string,
	apply func(*booking.Booking) error,
) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if actorRole == user.RoleViewer.String() && snap.UserID != actorID {
			return ErrBookingAccess
		}

		bookingEntity, err := bookingFromSnapshot(snap)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := apply(bookingEntity); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if bookingEntity.Status().String() == snap.Status {
			return nil
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, bookingEntity.Status()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// claimIdempotencyKey inserts or adopts the key. A non-nil result means the
// original request already completed and should be replayed.
func (c *bookingCommandsImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*CreateBookingResult, error) {
	if err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, "POST /bookings", requestHash, expiresAt); err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case idempotencyStatusCompleted:
		if existing.ResultBookingID == nil {
			return nil, errs.Mark(errs.New("completed request missing result booking id"), ErrIdempotencyCheckFailed)
		}
		return &CreateBookingResult{BookingID: *existing.ResultBookingID, IsReplayed: true}, nil

	case idempotencyStatusProcessing:
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateBooking
		}
		if existing.ExpiresAt.Before(c.clock.Now()) {
			claimed, claimErr := tx.Idempotency().ClaimExpiredIdempotencyKey(ctx, tx.DB(), key, userID, requestHash, expiresAt)
			if claimErr != nil {
				return nil, errs.Mark(claimErr, ErrIdempotencyCheckFailed)
			}
			if claimed > 0 {
				return nil, nil
			}
		}
		// The original request still holds the key and may be in flight.
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.Mark(errs.New("invalid idempotency key status"), ErrIdempotencyCheckFailed)
	}
}

func (c *bookingCommandsImpl) buildBooking(
	ctx context.Context,
	tx shared.Tx,
	req reqdto.CreateBookingRequest,
	userID uuid.UUID,
) (*booking.Booking, error) {
	boxSnap, err := tx.Reads().BoxByID(ctx, req.BoxID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBoxNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	boxEntity, err := boxFromSnapshot(boxSnap)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	period, err := booking.NewPeriod(req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	bookingEntity, err := c.factory.NewBooking(boxEntity, userID, period)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	return bookingEntity, nil
}

func (c *bookingCommandsImpl) enqueueBookingJob(ctx context.Context, tx shared.Tx, kind string, bookingID, userID uuid.UUID) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), kind, userID.String(), payload, c.clock.Now())
}

func boxFromSnapshot(snap *shared.BoxSnapshot) (*box.Box, error) {
	model, err := box.NewModel(snap.Model)
	if err != nil {
		return nil, err
	}
	status, err := box.NewStatus(snap.Status)
	if err != nil {
		return nil, err
	}
	return box.ReconstructBox(snap.ID, snap.StandID, model, status, int(snap.Score), snap.DailyRateCents, time.Time{}, time.Time{}), nil
}

func bookingFromSnapshot(snap *shared.BookingSnapshot) (*booking.Booking, error) {
	period, err := booking.NewPeriod(snap.StartsAt, snap.EndsAt)
	if err != nil {
		return nil, err
	}
	status := booking.Status(snap.Status)
	if !status.IsValid() {
		return nil, booking.ErrInvalidStatus
	}
	amount, err := booking.NewMoney(snap.ExtendedAmountCents)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		snap.ID,
		snap.BoxID,
		snap.UserID,
		period,
		status,
		snap.ExtensionCount,
		amount,
		snap.PaymentID,
		time.Time{},
		time.Time{},
	), nil
}

func calculateRequestHash(req any) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
