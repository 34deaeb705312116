package bookings

// StartSessionRequest opens a booking flow against one venue.
type StartSessionRequest struct {
	VenueID string `json:"venue_id" binding:"required,uuid"`
}

// SelectExperiencesRequest sets the experiences for the session.
type SelectExperiencesRequest struct {
	ExperienceIDs []string `json:"experience_ids" binding:"required,min=1,dive,uuid"`
}

// SelectSlotRequest picks the common date and time.
type SelectSlotRequest struct {
	Date string `json:"date" binding:"required,slotdate"`
	Time string `json:"time" binding:"required,slottime"`
}

// SetGuestsRequest sets the party composition.
type SetGuestsRequest struct {
	Adults   int `json:"adults" binding:"min=0"`
	Children int `json:"children" binding:"min=0"`
}

// SetDetailsRequest captures the tourist's contact details.
type SetDetailsRequest struct {
	FullName          string `json:"full_name" binding:"required,min=2,max=255"`
	Email             string `json:"email" binding:"required,email"`
	Phone             string `json:"phone" binding:"required,max=50"`
	NICPassportNumber string `json:"nic_passport_number" binding:"required,max=50"`
	Country           string `json:"country" binding:"required,max=100"`
	City              string `json:"city" binding:"max=100"`
}

// ConfirmRequest settles the booking.
type ConfirmRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=CARD CASH MOCK"`
}

// UpdateBookingStatusRequest moves a booking along its lifecycle (management).
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=CONFIRMED COMPLETED CANCELLED"`
}
