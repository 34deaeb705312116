package catalog

// VenueSummaryResponse is the listing view of a plantation.
type VenueSummaryResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Address         string `json:"address"`
	Description     string `json:"description"`
	BestTime        string `json:"best_time"`
	ImageURL        string `json:"image_url"`
	ExperienceCount int    `json:"experience_count"`
}

// VenueDetailResponse is the full plantation view with its experiences.
type VenueDetailResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Address      string               `json:"address"`
	Description  string               `json:"description"`
	BestTime     string               `json:"best_time"`
	ContactPhone string               `json:"contact_phone"`
	ContactEmail string               `json:"contact_email"`
	ImageURL     string               `json:"image_url"`
	Experiences  []ExperienceResponse `json:"experiences"`
}

// ExperienceResponse carries prices in minor units for both currencies.
type ExperienceResponse struct {
	ID                 string             `json:"id"`
	VenueID            string             `json:"venue_id"`
	Name               string             `json:"name"`
	Category           string             `json:"category"`
	AdultPriceUSDCents int64              `json:"adult_price_usd_cents"`
	ChildPriceUSDCents int64              `json:"child_price_usd_cents"`
	AdultPriceLKRCents int64              `json:"adult_price_lkr_cents"`
	ChildPriceLKRCents int64              `json:"child_price_lkr_cents"`
	TimeSlots          []TimeSlotResponse `json:"time_slots"`
}

// TimeSlotResponse exposes remaining capacity alongside the raw counters.
type TimeSlotResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Available int    `json:"available"`
}
