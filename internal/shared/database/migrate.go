package database

import (
	"teatrails/internal/bookings"
	"teatrails/internal/catalog"
	"teatrails/internal/ledger"
	"teatrails/internal/reviews"
	"teatrails/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&catalog.Venue{},
		&catalog.Experience{},
		&catalog.TimeSlot{},
		&ledger.Reservation{},
		&ledger.ReservationSlot{},
		&bookings.Booking{},
		&bookings.BookingExperience{},
		&bookings.Payment{},
		&reviews.Review{},
	)
}
