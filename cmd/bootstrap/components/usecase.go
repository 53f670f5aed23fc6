package components

import (
	"boxrent/internal/domain/booking"
	"boxrent/internal/pkg/clock"
	"boxrent/internal/pkg/config"
	"boxrent/internal/usecase/commands"
	"boxrent/internal/usecase/queries"
	"boxrent/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	booking.NewFactory,
	fx.Annotate(
		booking.NewStandardPricer,
		fx.As(new(booking.Pricer)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		NewExtensionCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookingQueries,
		queries.NewCatalogQueries,
		queries.NewAvailabilityQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		commands.NewTokenValidator,
	),
)

func NewExtensionCommands(
	u shared.UnitOfWork,
	gateway commands.PaymentGateway,
	pricer booking.Pricer,
	cfg config.Config,
	clk clock.Clock,
) commands.ExtensionCommands {
	return commands.NewExtensionCommands(u, gateway, pricer, cfg.Stripe.Currency, clk)
}
