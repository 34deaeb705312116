package bookings

import (
	"time"

	"github.com/google/uuid"

	"teatrails/internal/pricing"
)

// Booking is a confirmed (or later cancelled) visit: a party booked into a
// set of experiences at one venue, date and time.
type Booking struct {
	ID         uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingRef string        `json:"booking_ref" gorm:"uniqueIndex;not null;size:30"`
	UserID     uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	VenueID    uuid.UUID     `json:"venue_id" gorm:"type:uuid;not null;index"`
	Date       string        `json:"date" gorm:"type:varchar(10);not null"`
	Time       string        `json:"time" gorm:"type:varchar(5);not null"`
	Adults     int           `json:"adults" gorm:"not null;check:adults >= 0"`
	Children   int           `json:"children" gorm:"not null;check:children >= 0"`
	TotalCents int64         `json:"total_cents" gorm:"not null"`
	Currency   pricing.Currency `json:"currency" gorm:"not null;size:3"`
	Status     BookingStatus `json:"status" gorm:"not null;default:'PENDING';size:20;index"`

	// Capacity hold backing this booking; released on cancellation.
	ReservationToken string `json:"-" gorm:"size:64;index"`

	// Tourist contact details captured before payment.
	GuestName         string `json:"guest_name" gorm:"not null;size:255"`
	GuestEmail        string `json:"guest_email" gorm:"not null;size:255"`
	GuestPhone        string `json:"guest_phone" gorm:"size:50"`
	NICPassportNumber string `json:"nic_passport_number" gorm:"size:50"`
	GuestCountry      string `json:"guest_country" gorm:"size:100"`
	GuestCity         string `json:"guest_city" gorm:"size:100"`

	Experiences []BookingExperience `json:"experiences,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
	Payment     *Payment            `json:"payment,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingExperience is one priced line of a booking.
type BookingExperience struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID      uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;index"`
	ExperienceID   uuid.UUID `json:"experience_id" gorm:"type:uuid;not null"`
	ExperienceName string    `json:"experience_name" gorm:"not null;size:255"`
	AdultUnitCents int64     `json:"adult_unit_cents" gorm:"not null"`
	ChildUnitCents int64     `json:"child_unit_cents" gorm:"not null"`
	SubtotalCents  int64     `json:"subtotal_cents" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
}

// Payment records the (mock) charge for a booking.
type Payment struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID     uuid.UUID     `json:"booking_id" gorm:"type:uuid;not null;uniqueIndex"`
	TransactionID string        `json:"transaction_id" gorm:"uniqueIndex;not null;size:64"`
	AmountCents   int64         `json:"amount_cents" gorm:"not null"`
	Currency      pricing.Currency `json:"currency" gorm:"not null;size:3"`
	Status        PaymentStatus `json:"status" gorm:"not null;size:20"`
	Method        string        `json:"method" gorm:"size:30"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for BookingExperience
func (BookingExperience) TableName() string {
	return "booking_experiences"
}

// TableName sets the table name for Payment
func (Payment) TableName() string {
	return "payments"
}
