package reviews

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

// Repository interface for review operations
type Repository interface {
	Create(ctx context.Context, review *Review) error
	GetByVenueID(ctx context.Context, venueID uuid.UUID) ([]Review, error)
	GetByUserAndVenue(ctx context.Context, userID, venueID uuid.UUID) (*Review, error)
	Update(ctx context.Context, id uuid.UUID, rating int, comment string) error
	Delete(ctx context.Context, id uuid.UUID) error
	AverageRating(ctx context.Context, venueID uuid.UUID) (float64, int64, error)
}

// repository implements Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new review repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, review *Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repository) GetByVenueID(ctx context.Context, venueID uuid.UUID) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *repository) GetByUserAndVenue(ctx context.Context, userID, venueID uuid.UUID) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).
		First(&review, "user_id = ? AND venue_id = ?", userID, venueID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, rating int, comment string) error {
	result := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"rating": rating, "comment": comment})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *repository) AverageRating(ctx context.Context, venueID uuid.UUID) (float64, int64, error) {
	var result struct {
		Average float64
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&Review{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as count").
		Where("venue_id = ?", venueID).
		Scan(&result).Error
	return result.Average, result.Count, err
}
