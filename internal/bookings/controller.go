package bookings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"teatrails/internal/availability"
	"teatrails/internal/catalog"
	"teatrails/internal/ledger"
	"teatrails/internal/shared/utils/response"
	"teatrails/internal/users"
)

// Controller handles HTTP requests for the booking flow
type Controller struct {
	service Service
}

// NewController creates a new booking controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ============= SESSION FLOW =============

// StartSession opens a booking session for the authenticated tourist
func (c *Controller) StartSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}
	venueID, _ := uuid.Parse(req.VenueID)

	session, err := c.service.StartSession(ctx.Request.Context(), userID, venueID)
	if err != nil {
		c.respondFlowError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking session started", session, nil)
}

// GetSession returns the current state of a booking session
func (c *Controller) GetSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, err := uuid.Parse(ctx.Param("sessionId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}

	session, err := c.service.GetSession(ctx.Request.Context(), sessionID, userID)
	if err != nil {
		c.respondFlowError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Session retrieved successfully", session, nil)
}

// SelectExperiences sets the experience selection for the session
func (c *Controller) SelectExperiences(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, err := uuid.Parse(ctx.Param("sessionId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}

	var req SelectExperiencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}
	experienceIDs := make([]uuid.UUID, len(req.ExperienceIDs))
	for i, raw := range req.ExperienceIDs {
		experienceIDs[i], _ = uuid.Parse(raw)
	}

	session, err := c.service.SelectExperiences(ctx.Request.Context(), sessionID, userID, experienceIDs)
	if err != nil {
		c.respondFlowError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Experiences selected", session, nil)
}

// SelectSlot picks the date and time for the session
func (c *Controller) SelectSlot(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, err := uuid.Parse(ctx.Param("sessionId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}

	var req SelectSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	session, err := c.service.SelectSlot(ctx.Request.Context(), sessionID, userID, req.Date, req.Time)
	if err != nil {
		c.respondFlowError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Slot selected", session, nil)
}

// SetGuests sets the party composition for the session
func (c *Controller) SetGuests(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, err := uuid.Parse(ctx.Param("sessionId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}

	var req SetGuestsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	session, err := c.service.SetGuests(ctx.Request.Context(), sessionID, userID, req.Adults, req.Children)
	if err != nil {
		c.respondFlowError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Guests set", session, nil)
}

// SetDetails captures contact details and prices the selection
func (c *Controller) SetDetails(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, err := uuid.Parse(ctx.Param("sessionId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}

	var req SetDetailsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	session, err := c.service.SetDetails(ctx.Request.Context(), sessionID, userID, TouristDetails{
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		NICPassportNumber: req.NICPassportNumber,
		Country:           req.Country,
		City:              req.City,
	})
	if err != nil {
		c.respondFlowError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Details saved", session, nil)
}

// Confirm reserves capacity, charges and persists the booking
func (c *Controller) Confirm(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, err := uuid.Parse(ctx.Param("sessionId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}

	var req ConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	booking, err := c.service.Confirm(ctx.Request.Context(), sessionID, userID, req.PaymentMethod)
	if err != nil {
		c.respondFlowError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking confirmed", booking, nil)
}

// CancelSession abandons the booking flow
func (c *Controller) CancelSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, err := uuid.Parse(ctx.Param("sessionId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}

	session, err := c.service.CancelSession(ctx.Request.Context(), sessionID, userID)
	if err != nil {
		c.respondFlowError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Session cancelled", session, nil)
}

// ============= BOOKINGS =============

// GetBooking returns one booking by reference
func (c *Controller) GetBooking(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), ctx.Param("ref"), userID, isPrivileged(ctx))
	if err != nil {
		c.respondFlowError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

// ListMyBookings returns the authenticated tourist's bookings
func (c *Controller) ListMyBookings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	bookings, err := c.service.ListUserBookings(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

// ListVenueBookings returns all bookings for a venue (management view)
func (c *Controller) ListVenueBookings(ctx *gin.Context) {
	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	bookings, err := c.service.ListVenueBookings(ctx.Request.Context(), venueID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

// CancelBooking cancels a confirmed booking and frees its capacity
func (c *Controller) CancelBooking(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	booking, err := c.service.CancelBooking(ctx.Request.Context(), ctx.Param("ref"), userID, isPrivileged(ctx))
	if err != nil {
		c.respondFlowError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled", booking, nil)
}

// UpdateBookingStatus moves a booking along its lifecycle (management view)
func (c *Controller) UpdateBookingStatus(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req UpdateBookingStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	booking, err := c.service.UpdateBookingStatus(ctx.Request.Context(), ctx.Param("ref"), BookingStatus(req.Status), userID)
	if err != nil {
		c.respondFlowError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking status updated", booking, nil)
}

// ============= HELPERS =============

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

func isPrivileged(ctx *gin.Context) bool {
	role, exists := ctx.Get("user_role")
	if !exists {
		return false
	}
	r, ok := role.(string)
	return ok && (users.Role(r) == users.RolePlantationAdmin || users.Role(r) == users.RoleSuperAdmin)
}

func (c *Controller) respondFlowError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrBookingNotFound),
		errors.Is(err, catalog.ErrVenueNotFound), errors.Is(err, catalog.ErrExperienceNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Not found", nil, err.Error())
	case errors.Is(err, ErrNotSessionOwner), errors.Is(err, ErrNotBookingOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Access denied", nil, err.Error())
	case errors.Is(err, ErrInvalidTransition):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Invalid booking flow step", nil, err.Error())
	case errors.Is(err, ledger.ErrCapacityExceeded):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Selected slot can no longer fit the party", nil, err.Error())
	case errors.Is(err, availability.ErrNoCommonAvailability):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Selected experiences share no time slots", nil, err.Error())
	case errors.Is(err, availability.ErrInvalidSelection), errors.Is(err, availability.ErrEmptySelection),
		errors.Is(err, ErrInvalidGuests), errors.Is(err, ledger.ErrInvalidReservation):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Invalid selection", nil, err.Error())
	case errors.Is(err, ErrPaymentFailed):
		response.RespondJSON(ctx, "error", http.StatusPaymentRequired, "Payment failed", nil, err.Error())
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Booking operation failed", nil, err.Error())
	}
}
