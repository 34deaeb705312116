package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies the booking lifecycle event being published.
type EventType string

const (
	EventBookingConfirmed EventType = "BOOKING_CONFIRMED"
	EventBookingCancelled EventType = "BOOKING_CANCELLED"
)

// BookingEvent is the message published to the notification topic for every
// booking lifecycle change. Consumers (email, SMS) hang off the topic.
type BookingEvent struct {
	ID   uuid.UUID `json:"id"`
	Type EventType `json:"type"`

	BookingRef     string `json:"booking_ref"`
	VenueID        string `json:"venue_id"`
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`

	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Adults      int      `json:"adults"`
	Children    int      `json:"children"`
	TotalCents  int64    `json:"total_cents"`
	Currency    string   `json:"currency"`
	Experiences []string `json:"experiences"`

	CreatedAt time.Time `json:"created_at"`
}

// ToJSON serializes the event for the wire.
func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all events of one booking to the same partition so
// consumers see them in order.
func (e *BookingEvent) PartitionKey() string {
	return e.BookingRef
}
