package catalog

// CreateVenueRequest is the management payload for registering a plantation.
type CreateVenueRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=255"`
	Address      string `json:"address" binding:"required,max=255"`
	Description  string `json:"description" binding:"max=5000"`
	BestTime     string `json:"best_time" binding:"max=255"`
	ContactPhone string `json:"contact_phone" binding:"max=50"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ImageURL     string `json:"image_url" binding:"omitempty,url,max=500"`
}

// UpdateVenueRequest carries partial updates; nil fields are untouched.
type UpdateVenueRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=255"`
	Address      *string `json:"address" binding:"omitempty,max=255"`
	Description  *string `json:"description" binding:"omitempty,max=5000"`
	BestTime     *string `json:"best_time" binding:"omitempty,max=255"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=50"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	ImageURL     *string `json:"image_url" binding:"omitempty,url,max=500"`
}

// CreateExperienceRequest adds an experience to a venue. Prices in minor
// units; LKR fields optional (derived at pricing time when zero).
type CreateExperienceRequest struct {
	Name               string `json:"name" binding:"required,min=2,max=255"`
	Category           string `json:"category" binding:"required,max=100"`
	AdultPriceUSDCents int64  `json:"adult_price_usd_cents" binding:"min=0"`
	ChildPriceUSDCents int64  `json:"child_price_usd_cents" binding:"min=0"`
	AdultPriceLKRCents int64  `json:"adult_price_lkr_cents" binding:"min=0"`
	ChildPriceLKRCents int64  `json:"child_price_lkr_cents" binding:"min=0"`
}

type UpdateExperienceRequest struct {
	Name               *string `json:"name" binding:"omitempty,min=2,max=255"`
	Category           *string `json:"category" binding:"omitempty,max=100"`
	AdultPriceUSDCents *int64  `json:"adult_price_usd_cents" binding:"omitempty,min=0"`
	ChildPriceUSDCents *int64  `json:"child_price_usd_cents" binding:"omitempty,min=0"`
	AdultPriceLKRCents *int64  `json:"adult_price_lkr_cents" binding:"omitempty,min=0"`
	ChildPriceLKRCents *int64  `json:"child_price_lkr_cents" binding:"omitempty,min=0"`
}

// TimeSlotRequest is a single schedule entry.
type TimeSlotRequest struct {
	Date     string `json:"date" binding:"required,slotdate"`
	Time     string `json:"time" binding:"required,slottime"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

// ReplaceTimeSlotsRequest swaps an experience's full schedule.
type ReplaceTimeSlotsRequest struct {
	Slots []TimeSlotRequest `json:"slots" binding:"required,dive"`
}
