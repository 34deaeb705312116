package availability

import (
	"github.com/gin-gonic/gin"
)

// SetupAvailabilityRoutes registers the public availability lookup.
func SetupAvailabilityRoutes(rg *gin.RouterGroup, controller *Controller) {
	venues := rg.Group("/venues")
	{
		venues.GET("/:id/availability", controller.GetCommonSlots) // GET /api/v1/venues/:id/availability?experiences=a,b
	}
}
