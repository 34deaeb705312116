package availability

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"teatrails/internal/catalog"
)

var (
	ErrEmptySelection       = errors.New("at least one experience must be selected")
	ErrInvalidSelection     = errors.New("selection is not available")
	ErrNoCommonAvailability = errors.New("selected experiences share no time slots")
)

// Service computes common availability across a selection of experiences.
type Service interface {
	// CommonSlots returns every slot offered by all selected experiences,
	// chronologically ordered. An empty result is a normal outcome, not an
	// error.
	CommonSlots(ctx context.Context, venueID uuid.UUID, experienceIDs []uuid.UUID) ([]AggregatedSlot, error)

	// OfferedSlots is CommonSlots filtered to slots with remaining capacity.
	OfferedSlots(ctx context.Context, venueID uuid.UUID, experienceIDs []uuid.UUID) ([]AggregatedSlot, error)

	// ValidateSelection checks that the chosen slot is currently offered.
	// A slot is offered to any party while it has remaining capacity; one
	// booking consumes a single unit regardless of party size. Returns the
	// matching aggregate on success and ErrInvalidSelection when the slot is
	// absent or full.
	ValidateSelection(ctx context.Context, venueID uuid.UUID, experienceIDs []uuid.UUID, date, timeOfDay string) (*AggregatedSlot, error)
}

type service struct {
	catalog catalog.Service
}

// NewService creates a new availability service
func NewService(catalogService catalog.Service) Service {
	return &service{catalog: catalogService}
}

func (s *service) CommonSlots(ctx context.Context, venueID uuid.UUID, experienceIDs []uuid.UUID) ([]AggregatedSlot, error) {
	if len(experienceIDs) == 0 {
		return nil, ErrEmptySelection
	}

	experiences, err := s.catalog.GetExperiencesByIDs(ctx, venueID, experienceIDs)
	if err != nil {
		return nil, err
	}

	return Aggregate(experiences), nil
}

func (s *service) OfferedSlots(ctx context.Context, venueID uuid.UUID, experienceIDs []uuid.UUID) ([]AggregatedSlot, error) {
	slots, err := s.CommonSlots(ctx, venueID, experienceIDs)
	if err != nil {
		return nil, err
	}

	offered := slots[:0]
	for _, slot := range slots {
		if slot.Available > 0 {
			offered = append(offered, slot)
		}
	}
	return offered, nil
}

func (s *service) ValidateSelection(ctx context.Context, venueID uuid.UUID, experienceIDs []uuid.UUID, date, timeOfDay string) (*AggregatedSlot, error) {
	slots, err := s.OfferedSlots(ctx, venueID, experienceIDs)
	if err != nil {
		return nil, err
	}

	for _, slot := range slots {
		if slot.Date == date && slot.Time == timeOfDay {
			return &slot, nil
		}
	}
	return nil, ErrInvalidSelection
}

// Aggregate intersects the slot schedules of the given experiences. A slot
// survives only if every experience offers it; the aggregate's available
// count is the minimum across experiences, never a sum. Result is sorted by
// date then time, which for ISO date and 24h time strings is chronological.
func Aggregate(experiences []catalog.Experience) []AggregatedSlot {
	if len(experiences) == 0 {
		return nil
	}

	type tally struct {
		slot  AggregatedSlot
		count int
	}

	merged := make(map[string]*tally)
	for _, exp := range experiences {
		// Guard against duplicate slots within one experience inflating the
		// intersection count.
		seen := make(map[string]bool, len(exp.TimeSlots))
		for _, ts := range exp.TimeSlots {
			key := ts.Date + "||" + ts.Time
			if seen[key] {
				continue
			}
			seen[key] = true

			entry, ok := merged[key]
			if !ok {
				merged[key] = &tally{
					slot: AggregatedSlot{
						Date:      ts.Date,
						Time:      ts.Time,
						Capacity:  ts.Capacity,
						Booked:    ts.Booked,
						Available: ts.Available(),
					},
					count: 1,
				}
				continue
			}
			entry.count++
			if ts.Available() < entry.slot.Available {
				entry.slot.Available = ts.Available()
				entry.slot.Capacity = ts.Capacity
				entry.slot.Booked = ts.Booked
			}
		}
	}

	slots := make([]AggregatedSlot, 0, len(merged))
	for _, entry := range merged {
		if entry.count == len(experiences) {
			slots = append(slots, entry.slot)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].Time < slots[j].Time
	})
	return slots
}
