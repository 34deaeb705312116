package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"teatrails/internal/catalog"
)

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrAlreadyRated   = errors.New("venue already reviewed by this user")
	ErrNotReviewOwner = errors.New("review belongs to another user")
)

// VenueRating aggregates a venue's reviews.
type VenueRating struct {
	VenueID string  `json:"venue_id"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// Service interface for review operations
type Service interface {
	SubmitReview(ctx context.Context, userID, venueID uuid.UUID, rating int, comment string) (*Review, error)
	UpdateReview(ctx context.Context, userID, venueID uuid.UUID, rating int, comment string) (*Review, error)
	DeleteReview(ctx context.Context, userID, venueID uuid.UUID) error
	GetVenueReviews(ctx context.Context, venueID uuid.UUID) ([]Review, error)
	GetVenueRating(ctx context.Context, venueID uuid.UUID) (*VenueRating, error)
}

type service struct {
	repo    Repository
	catalog catalog.Service
}

// NewService creates a new review service
func NewService(repo Repository, catalogService catalog.Service) Service {
	return &service{repo: repo, catalog: catalogService}
}

func (s *service) SubmitReview(ctx context.Context, userID, venueID uuid.UUID, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := s.catalog.GetVenue(ctx, venueID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByUserAndVenue(ctx, userID, venueID); err == nil {
		return nil, ErrAlreadyRated
	} else if !errors.Is(err, ErrReviewNotFound) {
		return nil, err
	}

	review := &Review{
		VenueID: venueID,
		UserID:  userID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

func (s *service) UpdateReview(ctx context.Context, userID, venueID uuid.UUID, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	review, err := s.repo.GetByUserAndVenue(ctx, userID, venueID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, review.ID, rating, comment); err != nil {
		return nil, err
	}
	review.Rating = rating
	review.Comment = comment
	return review, nil
}

func (s *service) DeleteReview(ctx context.Context, userID, venueID uuid.UUID) error {
	review, err := s.repo.GetByUserAndVenue(ctx, userID, venueID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, review.ID)
}

func (s *service) GetVenueReviews(ctx context.Context, venueID uuid.UUID) ([]Review, error) {
	if _, err := s.catalog.GetVenue(ctx, venueID); err != nil {
		return nil, err
	}
	return s.repo.GetByVenueID(ctx, venueID)
}

func (s *service) GetVenueRating(ctx context.Context, venueID uuid.UUID) (*VenueRating, error) {
	if _, err := s.catalog.GetVenue(ctx, venueID); err != nil {
		return nil, err
	}
	average, count, err := s.repo.AverageRating(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return &VenueRating{
		VenueID: venueID.String(),
		Average: average,
		Count:   count,
	}, nil
}
