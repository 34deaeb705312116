package bookings

import (
	"github.com/gin-gonic/gin"

	"teatrails/internal/shared/middleware"
)

// SetupBookingRoutes registers the booking flow and booking management.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	sessions := rg.Group("/booking-sessions")
	sessions.Use(middleware.JWTAuth())
	{
		sessions.POST("", controller.StartSession)                             // POST /api/v1/booking-sessions
		sessions.GET("/:sessionId", controller.GetSession)                     // GET /api/v1/booking-sessions/:sessionId
		sessions.PUT("/:sessionId/experiences", controller.SelectExperiences)  // PUT /api/v1/booking-sessions/:sessionId/experiences
		sessions.PUT("/:sessionId/slot", controller.SelectSlot)                // PUT /api/v1/booking-sessions/:sessionId/slot
		sessions.PUT("/:sessionId/guests", controller.SetGuests)               // PUT /api/v1/booking-sessions/:sessionId/guests
		sessions.PUT("/:sessionId/details", controller.SetDetails)             // PUT /api/v1/booking-sessions/:sessionId/details
		sessions.POST("/:sessionId/confirm", controller.Confirm)               // POST /api/v1/booking-sessions/:sessionId/confirm
		sessions.DELETE("/:sessionId", controller.CancelSession)               // DELETE /api/v1/booking-sessions/:sessionId
	}

	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.GET("", controller.ListMyBookings)          // GET /api/v1/bookings
		bookings.GET("/:ref", controller.GetBooking)         // GET /api/v1/bookings/:ref
		bookings.DELETE("/:ref", controller.CancelBooking)   // DELETE /api/v1/bookings/:ref
	}

	manage := rg.Group("/manage")
	manage.Use(middleware.JWTAuth(), middleware.RequireVenueManager())
	{
		manage.GET("/venues/:id/bookings", controller.ListVenueBookings)      // GET /api/v1/manage/venues/:id/bookings
		manage.PATCH("/bookings/:ref/status", controller.UpdateBookingStatus) // PATCH /api/v1/manage/bookings/:ref/status
	}
}
