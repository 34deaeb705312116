package availability

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"teatrails/internal/catalog"
	"teatrails/internal/shared/utils/response"
)

// Controller handles HTTP requests for availability lookups
type Controller struct {
	service Service
}

// NewController creates a new availability controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetCommonSlots returns the slots shared by the selected experiences.
// Experiences are passed as a comma separated list of IDs; by default only
// slots with remaining capacity are returned, all=true includes full ones.
func (c *Controller) GetCommonSlots(ctx *gin.Context) {
	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	experienceIDs, err := parseExperienceIDs(ctx.Query("experiences"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid experience IDs", nil, err.Error())
		return
	}

	var slots []AggregatedSlot
	if ctx.Query("all") == "true" {
		slots, err = c.service.CommonSlots(ctx.Request.Context(), venueID, experienceIDs)
	} else {
		slots, err = c.service.OfferedSlots(ctx.Request.Context(), venueID, experienceIDs)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptySelection):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "No experiences selected", nil, err.Error())
		case errors.Is(err, catalog.ErrVenueNotFound), errors.Is(err, catalog.ErrExperienceNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Selection not found", nil, err.Error())
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to compute availability", nil, err.Error())
		}
		return
	}

	if slots == nil {
		slots = []AggregatedSlot{}
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Availability retrieved successfully", slots, nil)
}

func parseExperienceIDs(raw string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
