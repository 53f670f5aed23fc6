package shared

import (
	"context"
	"time"

	"boxrent/internal/domain/booking"
	"boxrent/internal/domain/user"
	"boxrent/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Payments() PaymentRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	BoxByID(ctx context.Context, id uuid.UUID) (*BoxSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// BookingByIDForUpdate row-locks the booking; only meaningful inside
	// a transaction.
	BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// ActiveSiblings returns rentable boxes sharing stand and model, the
	// given box excluded, ordered by ascending score then id.
	ActiveSiblings(ctx context.Context, standID uuid.UUID, model string, excludeBoxID uuid.UUID) ([]*BoxSnapshot, error)
	// OverlappingBookings returns non-terminal bookings on the box whose
	// period touches [from, to], endpoints inclusive. excludeBookingID may
	// be uuid.Nil.
	OverlappingBookings(ctx context.Context, boxID uuid.UUID, from, to time.Time, excludeBookingID uuid.UUID) ([]*BookingSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	PaymentByProviderRef(ctx context.Context, providerRef string) (*PaymentSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// ExtendPeriod moves ends_at forward and accumulates the extension
	// counters in a single statement.
	ExtendPeriod(ctx context.Context, tx db.DBTX, id uuid.UUID, newEnd time.Time, addedCents int64, paymentID uuid.UUID) error
	MoveToBox(ctx context.Context, tx db.DBTX, id, toBoxID uuid.UUID) error
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, to booking.Status) error
	// CompareAndSetStatus only applies when the stored status still matches
	// from. Returns the number of rows changed.
	CompareAndSetStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, from, to booking.Status) (int64, error)
}

type PaymentRepository interface {
	// FindOrCreate inserts the payment unless one with the same provider
	// reference exists, then returns the surviving row's id. The boolean
	// reports whether this call created the row.
	FindOrCreate(ctx context.Context, tx db.DBTX, p NewPayment) (uuid.UUID, bool, error)
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultHash string, bookingID uuid.UUID) error
	ClaimExpiredIdempotencyKey(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
}
