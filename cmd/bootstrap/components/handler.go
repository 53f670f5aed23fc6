package components

import (
	"boxrent/internal/handler"
	"boxrent/internal/handler/api"
	"boxrent/internal/handler/middleware"
	"boxrent/internal/pkg/config"
	"boxrent/internal/pkg/jwt"
	"boxrent/internal/usecase/commands"
	"boxrent/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewAuthHandler,
		api.NewBookingHandler,
		api.NewCatalogHandler,
		api.NewExtensionHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAuthHandler(authCommands commands.AuthCommands, userQueries queries.UserQueries, jwtService *jwt.Service, cfg config.Config) *api.AuthHandler {
	return api.NewAuthHandler(authCommands, userQueries, jwtService, cfg.Cookie)
}
