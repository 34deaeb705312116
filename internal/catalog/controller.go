package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"teatrails/internal/shared/utils/response"
)

// Controller handles HTTP requests for the catalog
type Controller struct {
	service Service
}

// NewController creates a new catalog controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ============= PUBLIC READS =============

// ListVenues returns all plantations
func (c *Controller) ListVenues(ctx *gin.Context) {
	var filters VenueFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	venues, err := c.service.ListVenues(ctx.Request.Context(), filters)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list venues", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venues retrieved successfully", venues, nil)
}

// GetVenue returns a single plantation with its experiences and slots
func (c *Controller) GetVenue(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	venue, err := c.service.GetVenue(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Venue not found", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get venue", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue retrieved successfully", venue, nil)
}

// GetExperiences returns the experiences of a plantation
func (c *Controller) GetExperiences(ctx *gin.Context) {
	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	experiences, err := c.service.GetExperiences(ctx.Request.Context(), venueID)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Venue not found", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get experiences", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Experiences retrieved successfully", experiences, nil)
}

// ============= MANAGEMENT =============

// CreateVenue registers a new plantation
func (c *Controller) CreateVenue(ctx *gin.Context) {
	var req CreateVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	venue, err := c.service.CreateVenue(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create venue", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Venue created successfully", venue, nil)
}

// UpdateVenue applies partial updates to a plantation
func (c *Controller) UpdateVenue(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	var req UpdateVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	if err := c.service.UpdateVenue(ctx.Request.Context(), id, req); err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Venue not found", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update venue", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue updated successfully", nil, nil)
}

// DeleteVenue removes a plantation and its experiences
func (c *Controller) DeleteVenue(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	if err := c.service.DeleteVenue(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Venue not found", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete venue", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue deleted successfully", nil, nil)
}

// CreateExperience adds an experience to a plantation
func (c *Controller) CreateExperience(ctx *gin.Context) {
	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	var req CreateExperienceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	experience, err := c.service.CreateExperience(ctx.Request.Context(), venueID, req)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Venue not found", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create experience", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Experience created successfully", experience, nil)
}

// UpdateExperience applies partial updates to an experience
func (c *Controller) UpdateExperience(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("experienceId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid experience ID", nil, err.Error())
		return
	}

	var req UpdateExperienceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	if err := c.service.UpdateExperience(ctx.Request.Context(), id, req); err != nil {
		if errors.Is(err, ErrExperienceNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Experience not found", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update experience", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Experience updated successfully", nil, nil)
}

// DeleteExperience removes an experience
func (c *Controller) DeleteExperience(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("experienceId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid experience ID", nil, err.Error())
		return
	}

	if err := c.service.DeleteExperience(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, ErrExperienceNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Experience not found", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete experience", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Experience deleted successfully", nil, nil)
}

// ReplaceTimeSlots swaps the schedule of an experience
func (c *Controller) ReplaceTimeSlots(ctx *gin.Context) {
	experienceID, err := uuid.Parse(ctx.Param("experienceId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid experience ID", nil, err.Error())
		return
	}

	var req ReplaceTimeSlotsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	if err := c.service.ReplaceTimeSlots(ctx.Request.Context(), experienceID, req); err != nil {
		switch {
		case errors.Is(err, ErrExperienceNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Experience not found", nil, err.Error())
		case errors.Is(err, ErrDuplicateSlot), errors.Is(err, ErrSlotCapacityBelowBooked):
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Invalid schedule", nil, err.Error())
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to replace time slots", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Time slots replaced successfully", nil, nil)
}
