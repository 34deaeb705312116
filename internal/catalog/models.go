package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Venue is a tea plantation offering bookable experiences. Reference data for
// the booking flow; mutated only through the management endpoints.
type Venue struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name         string    `json:"name" gorm:"uniqueIndex;not null;size:255"`
	Address      string    `json:"address" gorm:"not null;size:255"`
	Description  string    `json:"description" gorm:"type:text"`
	BestTime     string    `json:"best_time" gorm:"size:255"`
	ContactPhone string    `json:"contact_phone" gorm:"size:50"`
	ContactEmail string    `json:"contact_email" gorm:"size:255"`
	ImageURL     string    `json:"image_url" gorm:"size:500"`

	Experiences []Experience `json:"experiences,omitempty" gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Experience belongs to exactly one venue. Prices are stored per guest type in
// integer minor units (cents) for both supported currencies; LKR may be left
// zero, in which case it is derived from USD at the fixed conversion rate.
type Experience struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	VenueID  uuid.UUID `json:"venue_id" gorm:"type:uuid;index;not null"`
	Name     string    `json:"name" gorm:"not null;size:255"`
	Category string    `json:"category" gorm:"not null;size:100;index"`

	AdultPriceUSDCents int64 `json:"adult_price_usd_cents" gorm:"not null;check:adult_price_usd_cents >= 0"`
	ChildPriceUSDCents int64 `json:"child_price_usd_cents" gorm:"not null;check:child_price_usd_cents >= 0"`
	AdultPriceLKRCents int64 `json:"adult_price_lkr_cents" gorm:"default:0;check:adult_price_lkr_cents >= 0"`
	ChildPriceLKRCents int64 `json:"child_price_lkr_cents" gorm:"default:0;check:child_price_lkr_cents >= 0"`

	TimeSlots []TimeSlot `json:"time_slots,omitempty" gorm:"foreignKey:ExperienceID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TimeSlot is the unit of capacity contention. Date is ISO "2006-01-02" and
// Time is 24h "15:04" so lexicographic ordering matches chronological
// ordering. Booked is mutated only by the capacity ledger.
type TimeSlot struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ExperienceID uuid.UUID `json:"experience_id" gorm:"type:uuid;not null;uniqueIndex:idx_time_slots_exp_date_time"`
	Date         string    `json:"date" gorm:"type:varchar(10);not null;uniqueIndex:idx_time_slots_exp_date_time"`
	Time         string    `json:"time" gorm:"type:varchar(5);not null;uniqueIndex:idx_time_slots_exp_date_time"`
	Capacity     int       `json:"capacity" gorm:"not null;check:capacity > 0"`
	Booked       int       `json:"booked" gorm:"default:0;check:booked >= 0 AND booked <= capacity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Available returns the remaining capacity of the slot.
func (s TimeSlot) Available() int {
	return s.Capacity - s.Booked
}

// TableName sets the table name for Venue
func (Venue) TableName() string {
	return "venues"
}

// TableName sets the table name for Experience
func (Experience) TableName() string {
	return "experiences"
}

// TableName sets the table name for TimeSlot
func (TimeSlot) TableName() string {
	return "time_slots"
}
