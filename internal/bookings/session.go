package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"teatrails/internal/pricing"
	"teatrails/pkg/cache"
)

// FlowState is the step a booking session is currently in. The flow only
// moves along explicit edges; anything else is rejected.
type FlowState string

const (
	StateSelectingExperiences FlowState = "SELECTING_EXPERIENCES"
	StateSelectingSlot        FlowState = "SELECTING_SLOT"
	StateSelectingGuests      FlowState = "SELECTING_GUESTS"
	StateAwaitingDetails      FlowState = "AWAITING_DETAILS"
	StateAwaitingPayment      FlowState = "AWAITING_PAYMENT"
	StateConfirmed            FlowState = "CONFIRMED"
	StateCancelled            FlowState = "CANCELLED"
	StateFailed               FlowState = "FAILED"
)

var (
	ErrInvalidTransition = errors.New("invalid booking flow transition")
	ErrSessionNotFound   = errors.New("booking session not found")
)

// flowTransitions are the legal edges. Backward edges let the tourist revise
// an earlier step; a capacity conflict at payment time drops the session back
// to slot selection.
var flowTransitions = map[FlowState][]FlowState{
	StateSelectingExperiences: {StateSelectingSlot, StateCancelled, StateFailed},
	StateSelectingSlot:        {StateSelectingGuests, StateSelectingExperiences, StateCancelled, StateFailed},
	StateSelectingGuests:      {StateAwaitingDetails, StateSelectingSlot, StateCancelled, StateFailed},
	StateAwaitingDetails:      {StateAwaitingPayment, StateSelectingGuests, StateCancelled, StateFailed},
	StateAwaitingPayment:      {StateConfirmed, StateFailed, StateSelectingSlot, StateCancelled},
	StateConfirmed:            {},
	StateCancelled:            {},
	StateFailed:               {},
}

// IsTerminal reports whether the flow can still advance.
func (s FlowState) IsTerminal() bool {
	return len(flowTransitions[s]) == 0
}

// TouristDetails is the contact information collected before payment.
type TouristDetails struct {
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	NICPassportNumber string `json:"nic_passport_number"`
	Country           string `json:"country"`
	City              string `json:"city"`
}

// Session is the in-flight booking flow for one tourist. It lives in Redis
// until the booking is confirmed or the session expires; abandoning it never
// touches any capacity counter.
type Session struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"user_id"`
	VenueID       uuid.UUID        `json:"venue_id"`
	State         FlowState        `json:"state"`
	ExperienceIDs []uuid.UUID      `json:"experience_ids,omitempty"`
	Date          string           `json:"date,omitempty"`
	Time          string           `json:"time,omitempty"`
	Adults        int              `json:"adults"`
	Children      int              `json:"children"`
	Details       *TouristDetails  `json:"details,omitempty"`
	Currency      pricing.Currency `json:"currency,omitempty"`
	QuoteCents    int64            `json:"quote_cents"`
	BookingRef    string           `json:"booking_ref,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Transition moves the session to the target state, or fails with
// ErrInvalidTransition naming both states.
func (s *Session) Transition(target FlowState) error {
	for _, allowed := range flowTransitions[s.State] {
		if allowed == target {
			s.State = target
			s.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.State, target)
}

// SessionStore persists booking sessions in Redis for the flow TTL.
type SessionStore struct {
	cache cache.Service
	ttl   time.Duration
}

// NewSessionStore creates a new session store
func NewSessionStore(cacheService cache.Service, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: cacheService, ttl: ttl}
}

func sessionKey(id uuid.UUID) string {
	return fmt.Sprintf("bookings:session:%s", id)
}

func (st *SessionStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	var session Session
	err := st.cache.Get(ctx, sessionKey(id), &session)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

func (st *SessionStore) Save(ctx context.Context, session *Session) error {
	return st.cache.Set(ctx, sessionKey(session.ID), session, st.ttl)
}

func (st *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return st.cache.Delete(ctx, sessionKey(id))
}
