package catalog

import (
	"github.com/gin-gonic/gin"

	"teatrails/internal/shared/middleware"
)

// SetupCatalogRoutes registers public browsing and management routes.
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Public browsing routes
	venues := rg.Group("/venues")
	{
		venues.GET("", controller.ListVenues)                       // GET /api/v1/venues
		venues.GET("/:id", controller.GetVenue)                     // GET /api/v1/venues/:id
		venues.GET("/:id/experiences", controller.GetExperiences)   // GET /api/v1/venues/:id/experiences
	}

	// Management routes for plantation staff
	manage := rg.Group("/manage/venues")
	manage.Use(middleware.JWTAuth(), middleware.RequireVenueManager())
	{
		manage.POST("", controller.CreateVenue)                        // POST /api/v1/manage/venues
		manage.PUT("/:id", controller.UpdateVenue)                     // PUT /api/v1/manage/venues/:id
		manage.DELETE("/:id", controller.DeleteVenue)                  // DELETE /api/v1/manage/venues/:id
		manage.POST("/:id/experiences", controller.CreateExperience)   // POST /api/v1/manage/venues/:id/experiences
	}

	experiences := rg.Group("/manage/experiences")
	experiences.Use(middleware.JWTAuth(), middleware.RequireVenueManager())
	{
		experiences.PUT("/:experienceId", controller.UpdateExperience)                 // PUT /api/v1/manage/experiences/:experienceId
		experiences.DELETE("/:experienceId", controller.DeleteExperience)              // DELETE /api/v1/manage/experiences/:experienceId
		experiences.PUT("/:experienceId/time-slots", controller.ReplaceTimeSlots)      // PUT /api/v1/manage/experiences/:experienceId/time-slots
	}
}
