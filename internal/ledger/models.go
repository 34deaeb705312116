package ledger

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus tracks whether a hold is still counted against capacity.
type ReservationStatus string

const (
	StatusActive   ReservationStatus = "ACTIVE"
	StatusReleased ReservationStatus = "RELEASED"
)

// Reservation is one committed capacity hold: a single guest group across
// every selected experience at one date and time. A reservation consumes one
// unit from each touched slot, whatever the party size.
type Reservation struct {
	ID      uuid.UUID         `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Token   string            `json:"token" gorm:"uniqueIndex;not null;size:64"`
	VenueID uuid.UUID         `json:"venue_id" gorm:"type:uuid;not null;index"`
	Date    string            `json:"date" gorm:"type:varchar(10);not null"`
	Time    string            `json:"time" gorm:"type:varchar(5);not null"`
	Status  ReservationStatus `json:"status" gorm:"not null;default:'ACTIVE';size:20"`

	Slots []ReservationSlot `json:"slots,omitempty" gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReservationSlot records one slot a reservation drew capacity from, so a
// release can return exactly what was taken.
type ReservationSlot struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ReservationID uuid.UUID `json:"reservation_id" gorm:"type:uuid;not null;index"`
	TimeSlotID    uuid.UUID `json:"time_slot_id" gorm:"type:uuid;not null;index"`
	ExperienceID  uuid.UUID `json:"experience_id" gorm:"type:uuid;not null"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for Reservation
func (Reservation) TableName() string {
	return "reservations"
}

// TableName sets the table name for ReservationSlot
func (ReservationSlot) TableName() string {
	return "reservation_slots"
}
