package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrCapacityExceeded    = errors.New("capacity exceeded")
	ErrSlotNotFound        = errors.New("time slot not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationReleased = errors.New("reservation already released")
	ErrInvalidReservation  = errors.New("invalid reservation request")
	ErrLedgerCorrupt       = errors.New("booked count out of range for slot")
)

// CapacityError identifies which slot had no room left for another group. It
// unwraps to ErrCapacityExceeded so callers can match with errors.Is.
type CapacityError struct {
	ExperienceID uuid.UUID
	Date         string
	Time         string
	Available    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity exceeded for experience %s at %s %s: available %d",
		e.ExperienceID, e.Date, e.Time, e.Available)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}
