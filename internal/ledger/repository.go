package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teatrails/internal/catalog"
)

// Repository interface for ledger operations. WithTx runs fn inside a
// database transaction and hands it a repository bound to that transaction;
// row locks taken by LockSlots are held until fn returns.
type Repository interface {
	WithTx(ctx context.Context, fn func(txRepo Repository) error) error

	// LockSlots loads the slot row of each experience for the given date and
	// time under FOR UPDATE, ordered by ascending experience ID. The fixed
	// ordering keeps concurrent reservations from deadlocking on overlapping
	// selections.
	LockSlots(ctx context.Context, experienceIDs []uuid.UUID, date, timeOfDay string) ([]catalog.TimeSlot, error)

	AdjustBooked(ctx context.Context, slotID uuid.UUID, delta int) error

	CreateReservation(ctx context.Context, reservation *Reservation) error
	GetReservationByToken(ctx context.Context, token string) (*Reservation, error)
	GetReservationByTokenForUpdate(ctx context.Context, token string) (*Reservation, error)
	UpdateReservationStatus(ctx context.Context, id uuid.UUID, status ReservationStatus) error
}

// repository implements Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new ledger repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(ctx context.Context, fn func(txRepo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

func (r *repository) LockSlots(ctx context.Context, experienceIDs []uuid.UUID, date, timeOfDay string) ([]catalog.TimeSlot, error) {
	var slots []catalog.TimeSlot
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("experience_id IN ? AND date = ? AND time = ?", experienceIDs, date, timeOfDay).
		Order("experience_id ASC").
		Find(&slots).Error
	return slots, err
}

func (r *repository) AdjustBooked(ctx context.Context, slotID uuid.UUID, delta int) error {
	// The WHERE guard keeps booked inside [0, capacity] even if a caller is
	// out of step with the slot's real counter.
	result := r.db.WithContext(ctx).
		Model(&catalog.TimeSlot{}).
		Where("id = ? AND booked + ? >= 0 AND booked + ? <= capacity", slotID, delta, delta).
		UpdateColumn("booked", gorm.Expr("booked + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&catalog.TimeSlot{}).
			Where("id = ?", slotID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrSlotNotFound
		}
		return ErrLedgerCorrupt
	}
	return nil
}

func (r *repository) CreateReservation(ctx context.Context, reservation *Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *repository) GetReservationByToken(ctx context.Context, token string) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).
		Preload("Slots").
		First(&reservation, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) GetReservationByTokenForUpdate(ctx context.Context, token string) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&reservation, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	var slots []ReservationSlot
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservation.ID).
		Find(&slots).Error; err != nil {
		return nil, err
	}
	reservation.Slots = slots
	return &reservation, nil
}

func (r *repository) UpdateReservationStatus(ctx context.Context, id uuid.UUID, status ReservationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}
