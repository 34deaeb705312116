package ledger

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/google/uuid"

	"teatrails/pkg/logger"
)

// ReserveRequest asks for one guest group's worth of capacity on every
// listed experience at a single date and time.
type ReserveRequest struct {
	VenueID       uuid.UUID
	ExperienceIDs []uuid.UUID
	Date          string
	Time          string
}

// Service is the capacity ledger. All booked counters are mutated through it
// so a slot can never exceed its capacity, regardless of concurrency. A
// booking counts as one unit per slot regardless of how many guests travel
// together.
type Service interface {
	// Reserve atomically takes one unit from every experience's slot, or
	// takes nothing at all. On a conflict it returns a *CapacityError
	// wrapping ErrCapacityExceeded that names the slot with no room left.
	Reserve(ctx context.Context, req ReserveRequest) (*Reservation, error)

	// Release returns a reservation's units to its slots. Releasing an
	// already released reservation changes nothing and reports
	// ErrReservationReleased, so retried releases cannot double-free.
	Release(ctx context.Context, token string) error

	GetReservation(ctx context.Context, token string) (*Reservation, error)
}

type service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates a new ledger service
func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: logger.GetDefault(),
	}
}

func (s *service) Reserve(ctx context.Context, req ReserveRequest) (*Reservation, error) {
	if len(req.ExperienceIDs) == 0 || req.Date == "" || req.Time == "" {
		return nil, ErrInvalidReservation
	}

	ids := dedupeSorted(req.ExperienceIDs)

	var reservation *Reservation
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		slots, err := tx.LockSlots(ctx, ids, req.Date, req.Time)
		if err != nil {
			return fmt.Errorf("failed to lock slots: %w", err)
		}
		if len(slots) != len(ids) {
			return ErrSlotNotFound
		}

		// Check every slot before touching any counter, so a partial fit
		// never leaves a partial hold behind.
		for _, slot := range slots {
			if slot.Available() < 1 {
				return &CapacityError{
					ExperienceID: slot.ExperienceID,
					Date:         slot.Date,
					Time:         slot.Time,
					Available:    slot.Available(),
				}
			}
		}

		for _, slot := range slots {
			if err := tx.AdjustBooked(ctx, slot.ID, 1); err != nil {
				return fmt.Errorf("failed to increment booked count: %w", err)
			}
		}

		token, err := generateToken()
		if err != nil {
			return fmt.Errorf("failed to generate reservation token: %w", err)
		}

		reservation = &Reservation{
			Token:   token,
			VenueID: req.VenueID,
			Date:    req.Date,
			Time:    req.Time,
			Status:  StatusActive,
		}
		for _, slot := range slots {
			reservation.Slots = append(reservation.Slots, ReservationSlot{
				TimeSlotID:   slot.ID,
				ExperienceID: slot.ExperienceID,
			})
		}
		return tx.CreateReservation(ctx, reservation)
	})
	if err != nil {
		var capErr *CapacityError
		if errors.As(err, &capErr) {
			s.logger.LogCapacityExceeded(ctx, capErr.ExperienceID.String(), capErr.Date, capErr.Time)
		}
		if errors.Is(err, ErrLedgerCorrupt) {
			s.logger.LogInvariantViolation(ctx, "booked counter out of range during reserve", map[string]interface{}{
				"date": req.Date,
				"time": req.Time,
			})
		}
		return nil, err
	}
	return reservation, nil
}

func (s *service) Release(ctx context.Context, token string) error {
	var released int
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		reservation, err := tx.GetReservationByTokenForUpdate(ctx, token)
		if err != nil {
			return err
		}
		if reservation.Status == StatusReleased {
			return ErrReservationReleased
		}

		for _, slot := range reservation.Slots {
			if err := tx.AdjustBooked(ctx, slot.TimeSlotID, -1); err != nil {
				return fmt.Errorf("failed to decrement booked count: %w", err)
			}
		}
		released = len(reservation.Slots)
		return tx.UpdateReservationStatus(ctx, reservation.ID, StatusReleased)
	})
	if err == nil {
		s.logger.LogReservationReleased(ctx, token, released)
	} else if errors.Is(err, ErrLedgerCorrupt) {
		s.logger.LogInvariantViolation(ctx, "booked counter out of range during release", map[string]interface{}{
			"token": token,
		})
	}
	return err
}

func (s *service) GetReservation(ctx context.Context, token string) (*Reservation, error) {
	return s.repo.GetReservationByToken(ctx, token)
}

// dedupeSorted returns the unique experience IDs in ascending order, which
// fixes the lock acquisition order across concurrent transactions.
func dedupeSorted(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

const tokenCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateToken() (string, error) {
	suffix := make([]byte, 12)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenCharset))))
		if err != nil {
			return "", err
		}
		suffix[i] = tokenCharset[n.Int64()]
	}
	return "RSV-" + string(suffix), nil
}
