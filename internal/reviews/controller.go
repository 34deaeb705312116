package reviews

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"teatrails/internal/catalog"
	"teatrails/internal/shared/utils/response"
)

// SubmitReviewRequest carries a new or updated rating.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// Controller handles HTTP requests for reviews
type Controller struct {
	service Service
}

// NewController creates a new review controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetVenueReviews lists a venue's reviews
func (c *Controller) GetVenueReviews(ctx *gin.Context) {
	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	reviews, err := c.service.GetVenueReviews(ctx.Request.Context(), venueID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reviews retrieved successfully", reviews, nil)
}

// GetVenueRating returns the venue's average rating
func (c *Controller) GetVenueRating(ctx *gin.Context) {
	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	rating, err := c.service.GetVenueRating(ctx.Request.Context(), venueID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Rating retrieved successfully", rating, nil)
}

// SubmitReview creates the tourist's review of a venue
func (c *Controller) SubmitReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	var req SubmitReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	review, err := c.service.SubmitReview(ctx.Request.Context(), userID, venueID, req.Rating, req.Comment)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Review submitted successfully", review, nil)
}

// UpdateReview revises the tourist's review of a venue
func (c *Controller) UpdateReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	var req SubmitReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	review, err := c.service.UpdateReview(ctx.Request.Context(), userID, venueID, req.Rating, req.Comment)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Review updated successfully", review, nil)
}

// DeleteReview removes the tourist's review of a venue
func (c *Controller) DeleteReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	if err := c.service.DeleteReview(ctx.Request.Context(), userID, venueID); err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Review deleted successfully", nil, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrVenueNotFound), errors.Is(err, ErrReviewNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Not found", nil, err.Error())
	case errors.Is(err, ErrInvalidRating):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Invalid rating", nil, err.Error())
	case errors.Is(err, ErrAlreadyRated):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Venue already reviewed", nil, err.Error())
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Review operation failed", nil, err.Error())
	}
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid user identity", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}
