package reviews

import (
	"github.com/gin-gonic/gin"

	"teatrails/internal/shared/middleware"
)

// SetupReviewRoutes registers public reads and authenticated writes.
func SetupReviewRoutes(rg *gin.RouterGroup, controller *Controller) {
	venues := rg.Group("/venues")
	{
		venues.GET("/:id/reviews", controller.GetVenueReviews) // GET /api/v1/venues/:id/reviews
		venues.GET("/:id/rating", controller.GetVenueRating)   // GET /api/v1/venues/:id/rating
	}

	authed := rg.Group("/venues")
	authed.Use(middleware.JWTAuth())
	{
		authed.POST("/:id/reviews", controller.SubmitReview)   // POST /api/v1/venues/:id/reviews
		authed.PUT("/:id/reviews", controller.UpdateReview)    // PUT /api/v1/venues/:id/reviews
		authed.DELETE("/:id/reviews", controller.DeleteReview) // DELETE /api/v1/venues/:id/reviews
	}
}
