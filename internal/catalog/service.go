package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"teatrails/internal/shared/config"
	"teatrails/pkg/cache"
	"teatrails/pkg/logger"
)

var (
	ErrVenueNotFound           = errors.New("venue not found")
	ErrExperienceNotFound      = errors.New("experience not found")
	ErrSlotCapacityBelowBooked = errors.New("slot capacity cannot drop below booked count")
	ErrDuplicateSlot           = errors.New("duplicate time slot in schedule")
)

const (
	venueListCacheKey   = "catalog:venues:list"
	venueCachePatternAl = "catalog:venue*"
)

// Service interface for catalog operations
type Service interface {
	// Public reads
	ListVenues(ctx context.Context, filters VenueFilters) ([]VenueSummaryResponse, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*VenueDetailResponse, error)
	GetExperiences(ctx context.Context, venueID uuid.UUID) ([]ExperienceResponse, error)
	GetExperiencesByIDs(ctx context.Context, venueID uuid.UUID, ids []uuid.UUID) ([]Experience, error)

	// Management
	CreateVenue(ctx context.Context, req CreateVenueRequest) (*VenueDetailResponse, error)
	UpdateVenue(ctx context.Context, id uuid.UUID, req UpdateVenueRequest) error
	DeleteVenue(ctx context.Context, id uuid.UUID) error
	CreateExperience(ctx context.Context, venueID uuid.UUID, req CreateExperienceRequest) (*ExperienceResponse, error)
	UpdateExperience(ctx context.Context, id uuid.UUID, req UpdateExperienceRequest) error
	DeleteExperience(ctx context.Context, id uuid.UUID) error
	ReplaceTimeSlots(ctx context.Context, experienceID uuid.UUID, req ReplaceTimeSlotsRequest) error
}

type service struct {
	repo   Repository
	cache  cache.Service
	config *config.Config
	logger *logger.Logger
}

// NewService creates a new catalog service
func NewService(repo Repository, cacheService cache.Service, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		cache:  cacheService,
		config: cfg,
		logger: logger.GetDefault(),
	}
}

// ============= PUBLIC READS =============

func (s *service) ListVenues(ctx context.Context, filters VenueFilters) ([]VenueSummaryResponse, error) {
	// Only the unfiltered listing is cached; searches go straight through.
	if filters.Search == "" && s.cache != nil {
		var cached []VenueSummaryResponse
		err := s.cache.GetOrSet(ctx, venueListCacheKey, s.config.Redis.VenueListTTL, func() (interface{}, error) {
			venues, err := s.repo.GetVenues(ctx, filters)
			if err != nil {
				return nil, err
			}
			return toVenueSummaries(venues), nil
		}, &cached)
		if err == nil {
			return cached, nil
		}
		s.logger.Debug("venue list cache bypass", "error", err)
	}

	venues, err := s.repo.GetVenues(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return toVenueSummaries(venues), nil
}

func (s *service) GetVenue(ctx context.Context, id uuid.UUID) (*VenueDetailResponse, error) {
	venue, err := s.repo.GetVenueByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toVenueDetail(venue)
	return &resp, nil
}

func (s *service) GetExperiences(ctx context.Context, venueID uuid.UUID) ([]ExperienceResponse, error) {
	// Venue existence check keeps the not-found contract distinct from an
	// empty experience list.
	if _, err := s.repo.GetVenueByID(ctx, venueID); err != nil {
		return nil, err
	}
	experiences, err := s.repo.GetExperiencesByVenueID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get experiences: %w", err)
	}
	responses := make([]ExperienceResponse, len(experiences))
	for i, exp := range experiences {
		responses[i] = toExperienceResponse(&exp)
	}
	return responses, nil
}

func (s *service) GetExperiencesByIDs(ctx context.Context, venueID uuid.UUID, ids []uuid.UUID) ([]Experience, error) {
	if len(ids) == 0 {
		return nil, ErrExperienceNotFound
	}
	experiences, err := s.repo.GetExperiencesByIDs(ctx, venueID, ids)
	if err != nil {
		return nil, err
	}
	if len(experiences) != len(ids) {
		return nil, ErrExperienceNotFound
	}
	return experiences, nil
}

// ============= MANAGEMENT =============

func (s *service) CreateVenue(ctx context.Context, req CreateVenueRequest) (*VenueDetailResponse, error) {
	venue := &Venue{
		Name:         req.Name,
		Address:      req.Address,
		Description:  req.Description,
		BestTime:     req.BestTime,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		ImageURL:     req.ImageURL,
	}
	if err := s.repo.CreateVenue(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	s.invalidateVenueCache(ctx)
	resp := toVenueDetail(venue)
	return &resp, nil
}

func (s *service) UpdateVenue(ctx context.Context, id uuid.UUID, req UpdateVenueRequest) error {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.BestTime != nil {
		updates["best_time"] = *req.BestTime
	}
	if req.ContactPhone != nil {
		updates["contact_phone"] = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		updates["contact_email"] = *req.ContactEmail
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.repo.UpdateVenue(ctx, id, updates); err != nil {
		return err
	}
	s.invalidateVenueCache(ctx)
	return nil
}

func (s *service) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteVenue(ctx, id); err != nil {
		return err
	}
	s.invalidateVenueCache(ctx)
	return nil
}

func (s *service) CreateExperience(ctx context.Context, venueID uuid.UUID, req CreateExperienceRequest) (*ExperienceResponse, error) {
	if _, err := s.repo.GetVenueByID(ctx, venueID); err != nil {
		return nil, err
	}

	experience := &Experience{
		VenueID:            venueID,
		Name:               req.Name,
		Category:           req.Category,
		AdultPriceUSDCents: req.AdultPriceUSDCents,
		ChildPriceUSDCents: req.ChildPriceUSDCents,
		AdultPriceLKRCents: req.AdultPriceLKRCents,
		ChildPriceLKRCents: req.ChildPriceLKRCents,
	}
	if err := s.repo.CreateExperience(ctx, experience); err != nil {
		return nil, fmt.Errorf("failed to create experience: %w", err)
	}
	s.invalidateVenueCache(ctx)
	resp := toExperienceResponse(experience)
	return &resp, nil
}

func (s *service) UpdateExperience(ctx context.Context, id uuid.UUID, req UpdateExperienceRequest) error {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.AdultPriceUSDCents != nil {
		updates["adult_price_usd_cents"] = *req.AdultPriceUSDCents
	}
	if req.ChildPriceUSDCents != nil {
		updates["child_price_usd_cents"] = *req.ChildPriceUSDCents
	}
	if req.AdultPriceLKRCents != nil {
		updates["adult_price_lkr_cents"] = *req.AdultPriceLKRCents
	}
	if req.ChildPriceLKRCents != nil {
		updates["child_price_lkr_cents"] = *req.ChildPriceLKRCents
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.repo.UpdateExperience(ctx, id, updates); err != nil {
		return err
	}
	s.invalidateVenueCache(ctx)
	return nil
}

func (s *service) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteExperience(ctx, id); err != nil {
		return err
	}
	s.invalidateVenueCache(ctx)
	return nil
}

func (s *service) ReplaceTimeSlots(ctx context.Context, experienceID uuid.UUID, req ReplaceTimeSlotsRequest) error {
	if _, err := s.repo.GetExperienceByID(ctx, experienceID); err != nil {
		return err
	}

	seen := make(map[string]bool, len(req.Slots))
	slots := make([]TimeSlot, len(req.Slots))
	for i, slotReq := range req.Slots {
		key := slotReq.Date + "||" + slotReq.Time
		if seen[key] {
			return ErrDuplicateSlot
		}
		seen[key] = true
		slots[i] = TimeSlot{
			Date:     slotReq.Date,
			Time:     slotReq.Time,
			Capacity: slotReq.Capacity,
		}
	}

	if err := s.repo.ReplaceTimeSlots(ctx, experienceID, slots); err != nil {
		return err
	}
	s.invalidateVenueCache(ctx)
	return nil
}

func (s *service) invalidateVenueCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, venueCachePatternAl); err != nil {
		s.logger.Debug("venue cache invalidation failed", "error", err)
	}
	if err := s.cache.Delete(ctx, venueListCacheKey); err != nil {
		s.logger.Debug("venue list cache invalidation failed", "error", err)
	}
}
