// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"teatrails/internal/auth"
	"teatrails/internal/availability"
	"teatrails/internal/bookings"
	"teatrails/internal/catalog"
	"teatrails/internal/ledger"
	"teatrails/internal/notifications"
	"teatrails/internal/pricing"
	"teatrails/internal/reviews"
	"teatrails/internal/shared/config"
	"teatrails/internal/shared/database"
	"teatrails/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config        *config.Config
	db            *database.DB
	notifications *notifications.Service

	// Shared across feature setups.
	cacheService   cache.Service
	catalogService catalog.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notificationService *notifications.Service) *Router {
	return &Router{
		config:        cfg,
		db:            db,
		notifications: notificationService,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	r.cacheService = cache.NewService(r.db.GetRedis())

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		// Catalog first: availability, bookings and reviews all lean on it.
		r.setupCatalogRoutes(api)
		r.setupAvailabilityRoutes(api)
		r.setupBookingRoutes(api)
		r.setupReviewRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "teatrails-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "teatrails-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupCatalogRoutes configures venue and experience routes
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	r.catalogService = catalog.NewService(catalogRepo, r.cacheService, r.config)
	catalogController := catalog.NewController(r.catalogService)

	catalog.SetupCatalogRoutes(rg, catalogController)
}

// setupAvailabilityRoutes configures the common-slot lookup
func (r *Router) setupAvailabilityRoutes(rg *gin.RouterGroup) {
	availabilityService := availability.NewService(r.catalogService)
	availabilityController := availability.NewController(availabilityService)

	availability.SetupAvailabilityRoutes(rg, availabilityController)
}

// setupBookingRoutes configures the booking flow and booking management
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	ledgerRepo := ledger.NewRepository(r.db.GetPostgreSQL())
	ledgerService := ledger.NewService(ledgerRepo)

	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	sessionStore := bookings.NewSessionStore(r.cacheService, r.config.Redis.BookingSessionTTL)

	bookingService := bookings.NewService(
		sessionStore,
		bookingRepo,
		r.catalogService,
		availability.NewService(r.catalogService),
		pricing.NewService(),
		ledgerService,
		nil, // default mock payment gateway
		r.notifications,
	)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupReviewRoutes configures review routes
func (r *Router) setupReviewRoutes(rg *gin.RouterGroup) {
	reviewRepo := reviews.NewRepository(r.db.GetPostgreSQL())
	reviewService := reviews.NewService(reviewRepo, r.catalogService)
	reviewController := reviews.NewController(reviewService)

	reviews.SetupReviewRoutes(rg, reviewController)
}
