package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	"boxrent/internal/handler/api"
	"boxrent/internal/handler/middleware"
	"boxrent/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	catalogHandler *api.CatalogHandler,
	extensionHandler *api.ExtensionHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, authHandler, bookingHandler, catalogHandler, extensionHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	catalogHandler *api.CatalogHandler,
	extensionHandler *api.ExtensionHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	catalogCache := middleware.ResponseCache(
		gocache.New(cfg.Cache.TTL, cfg.Cache.Cleanup), cfg.Cache.TTL)
	paymentLimit := middleware.RateLimit(
		rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst, cfg.RateLimit.ClientTTL)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		locations := apiGroup.Group("/locations")
		{
			addRoutes(locations, []route{
				{Method: http.MethodGet, Path: "", Handler: catalogHandler.ListLocations, Mw: []gin.HandlerFunc{catalogCache}},
				{Method: http.MethodGet, Path: "/:id", Handler: catalogHandler.GetLocation, Mw: []gin.HandlerFunc{catalogCache}},
				{Method: http.MethodGet, Path: "/:id/stands", Handler: catalogHandler.ListStands, Mw: []gin.HandlerFunc{catalogCache}},
				{Method: http.MethodGet, Path: "/:id/boxes", Handler: catalogHandler.ListBoxes, Mw: []gin.HandlerFunc{catalogCache}},
				{Method: http.MethodGet, Path: "/:id/blocked-ranges", Handler: catalogHandler.BlockedRanges},
			})
		}

		boxes := apiGroup.Group("/boxes")
		{
			addRoutes(boxes, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: catalogHandler.GetBox, Mw: []gin.HandlerFunc{catalogCache}},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: catalogHandler.CheckBoxAvailability},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: bookingHandler.ConfirmBooking},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.CancelBooking},
				{Method: http.MethodPost, Path: "/:id/extension/quote", Handler: extensionHandler.QuoteExtension},
				{Method: http.MethodPost, Path: "/:id/extension/initiate", Handler: extensionHandler.InitiateExtension, Mw: []gin.HandlerFunc{paymentLimit}},
				{Method: http.MethodPost, Path: "/:id/extension/complete", Handler: extensionHandler.CompleteExtension, Mw: []gin.HandlerFunc{paymentLimit}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		// Route-level middleware joins gin's own chain so wrapping
		// middleware (response cache) sees the handler run inside Next.
		handlers := append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, handlers...)
		case http.MethodPost:
			g.POST(r.Path, handlers...)
		case http.MethodPut:
			g.PUT(r.Path, handlers...)
		case http.MethodPatch:
			g.PATCH(r.Path, handlers...)
		case http.MethodDelete:
			g.DELETE(r.Path, handlers...)
		default:
			g.Any(r.Path, handlers...)
		}
	}
}
