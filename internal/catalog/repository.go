package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for catalog operations
type Repository interface {
	// Venues
	CreateVenue(ctx context.Context, venue *Venue) error
	GetVenueByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	GetVenues(ctx context.Context, filters VenueFilters) ([]Venue, error)
	UpdateVenue(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteVenue(ctx context.Context, id uuid.UUID) error

	// Experiences
	CreateExperience(ctx context.Context, experience *Experience) error
	GetExperienceByID(ctx context.Context, id uuid.UUID) (*Experience, error)
	GetExperiencesByVenueID(ctx context.Context, venueID uuid.UUID) ([]Experience, error)
	GetExperiencesByIDs(ctx context.Context, venueID uuid.UUID, ids []uuid.UUID) ([]Experience, error)
	UpdateExperience(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteExperience(ctx context.Context, id uuid.UUID) error

	// Time slots
	ReplaceTimeSlots(ctx context.Context, experienceID uuid.UUID, slots []TimeSlot) error
}

// repository implements Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ============= VENUES =============

func (r *repository) CreateVenue(ctx context.Context, venue *Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

func (r *repository) GetVenueByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).
		Preload("Experiences", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Preload("Experiences.TimeSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, time ASC")
		}).
		First(&venue, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &venue, nil
}

func (r *repository) GetVenues(ctx context.Context, filters VenueFilters) ([]Venue, error) {
	var venues []Venue
	query := r.db.WithContext(ctx).Model(&Venue{})

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ?", pattern, pattern)
	}

	err := query.Order("name ASC").Find(&venues).Error
	return venues, err
}

func (r *repository) UpdateVenue(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&Venue{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVenueNotFound
	}
	return nil
}

func (r *repository) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Venue{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// ============= EXPERIENCES =============

func (r *repository) CreateExperience(ctx context.Context, experience *Experience) error {
	return r.db.WithContext(ctx).Create(experience).Error
}

func (r *repository) GetExperienceByID(ctx context.Context, id uuid.UUID) (*Experience, error) {
	var experience Experience
	err := r.db.WithContext(ctx).
		Preload("TimeSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, time ASC")
		}).
		First(&experience, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExperienceNotFound
		}
		return nil, err
	}
	return &experience, nil
}

func (r *repository) GetExperiencesByVenueID(ctx context.Context, venueID uuid.UUID) ([]Experience, error) {
	var experiences []Experience
	err := r.db.WithContext(ctx).
		Preload("TimeSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, time ASC")
		}).
		Where("venue_id = ?", venueID).
		Order("name ASC").
		Find(&experiences).Error
	return experiences, err
}

func (r *repository) GetExperiencesByIDs(ctx context.Context, venueID uuid.UUID, ids []uuid.UUID) ([]Experience, error) {
	var experiences []Experience
	err := r.db.WithContext(ctx).
		Preload("TimeSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, time ASC")
		}).
		Where("venue_id = ? AND id IN ?", venueID, ids).
		Order("name ASC").
		Find(&experiences).Error
	return experiences, err
}

func (r *repository) UpdateExperience(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&Experience{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExperienceNotFound
	}
	return nil
}

func (r *repository) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Experience{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExperienceNotFound
	}
	return nil
}

// ============= TIME SLOTS =============

// ReplaceTimeSlots swaps the full slot schedule of an experience in one
// transaction. Slots that already carry bookings are preserved so the
// ledger's booked counters are never dropped by a schedule edit.
func (r *repository) ReplaceTimeSlots(ctx context.Context, experienceID uuid.UUID, slots []TimeSlot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []TimeSlot
		if err := tx.Where("experience_id = ?", experienceID).Find(&existing).Error; err != nil {
			return err
		}

		booked := make(map[string]TimeSlot, len(existing))
		for _, slot := range existing {
			if slot.Booked > 0 {
				booked[slot.Date+"||"+slot.Time] = slot
			}
		}

		if err := tx.Where("experience_id = ? AND booked = 0", experienceID).
			Delete(&TimeSlot{}).Error; err != nil {
			return err
		}

		for i := range slots {
			slots[i].ExperienceID = experienceID
			key := slots[i].Date + "||" + slots[i].Time
			if kept, ok := booked[key]; ok {
				if slots[i].Capacity < kept.Booked {
					return ErrSlotCapacityBelowBooked
				}
				if err := tx.Model(&TimeSlot{}).Where("id = ?", kept.ID).
					Update("capacity", slots[i].Capacity).Error; err != nil {
					return err
				}
				delete(booked, key)
				continue
			}
			if err := tx.Create(&slots[i]).Error; err != nil {
				return err
			}
		}

		// Slots with bookings that are absent from the new schedule stay in
		// place; removing them would orphan confirmed reservations.
		return nil
	})
}

// ============= FILTER STRUCTS =============

type VenueFilters struct {
	Search string `form:"search"`
}
