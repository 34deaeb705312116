package bookings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking not found")

// Repository interface for booking persistence
type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByRef(ctx context.Context, ref string) (*Booking, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	GetByVenueID(ctx context.Context, venueID uuid.UUID) ([]Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, status PaymentStatus) error
}

// repository implements Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Experiences").
		Preload("Payment").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByRef(ctx context.Context, ref string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Experiences").
		Preload("Payment").
		First(&booking, "booking_ref = ?", ref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Experiences").
		Preload("Payment").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) GetByVenueID(ctx context.Context, venueID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Experiences").
		Where("venue_id = ?", venueID).
		Order("date ASC, time ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, status PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&Payment{}).
		Where("booking_id = ?", bookingID).
		Update("status", status).Error
}
