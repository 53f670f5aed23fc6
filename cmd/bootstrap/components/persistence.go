package components

import (
	"context"
	"log/slog"

	"boxrent/internal/infra/db"
	"boxrent/internal/infra/readstore"
	"boxrent/internal/infra/reconcile"
	"boxrent/internal/infra/repository"
	"boxrent/internal/infra/uow"
	"boxrent/internal/usecase/queries"
	"boxrent/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
	reconcileModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewCatalogReadStore,
			fx.As(new(queries.CatalogReadStore)),
		),
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Standalone booking repository for the status recorder, which
		// writes outside any request transaction.
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(shared.BookingRepository)),
		),
	),
)

var reconcileModule = fx.Module("persistence/reconcile",
	fx.Provide(
		fx.Annotate(
			NewStatusRecorder,
			fx.As(new(queries.StatusRecorder)),
		),
	),
)

func NewStatusRecorder(lc fx.Lifecycle, u shared.UnitOfWork, repo shared.BookingRepository, logger *slog.Logger) *reconcile.Recorder {
	recorder := reconcile.NewRecorder(u, repo, logger)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			recorder.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			recorder.Stop()
			return nil
		},
	})
	return recorder
}

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
