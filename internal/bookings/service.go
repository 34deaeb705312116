package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"teatrails/internal/availability"
	"teatrails/internal/catalog"
	"teatrails/internal/ledger"
	"teatrails/internal/pricing"
	"teatrails/pkg/logger"
)

var (
	ErrNotSessionOwner = errors.New("session belongs to another user")
	ErrNotBookingOwner = errors.New("booking belongs to another user")
	ErrPaymentFailed   = errors.New("payment failed")
	ErrInvalidGuests   = errors.New("at least one guest is required")
)

// Notifier publishes booking lifecycle events. A nil notifier disables
// publishing without touching the flow.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *Booking)
	BookingCancelled(ctx context.Context, booking *Booking)
}

// PaymentProcessor charges the tourist. The default implementation is a mock
// gateway that always settles.
type PaymentProcessor interface {
	Charge(ctx context.Context, amountCents int64, currency pricing.Currency, method string) (transactionID string, err error)
}

// Service orchestrates the booking flow end to end: session steps, capacity
// reservation, pricing, payment and persistence.
type Service interface {
	StartSession(ctx context.Context, userID, venueID uuid.UUID) (*Session, error)
	GetSession(ctx context.Context, sessionID, userID uuid.UUID) (*Session, error)
	SelectExperiences(ctx context.Context, sessionID, userID uuid.UUID, experienceIDs []uuid.UUID) (*Session, error)
	SelectSlot(ctx context.Context, sessionID, userID uuid.UUID, date, timeOfDay string) (*Session, error)
	SetGuests(ctx context.Context, sessionID, userID uuid.UUID, adults, children int) (*Session, error)
	SetDetails(ctx context.Context, sessionID, userID uuid.UUID, details TouristDetails) (*Session, error)
	Confirm(ctx context.Context, sessionID, userID uuid.UUID, paymentMethod string) (*Booking, error)
	CancelSession(ctx context.Context, sessionID, userID uuid.UUID) (*Session, error)

	GetBooking(ctx context.Context, ref string, userID uuid.UUID, privileged bool) (*Booking, error)
	ListUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	ListVenueBookings(ctx context.Context, venueID uuid.UUID) ([]Booking, error)
	CancelBooking(ctx context.Context, ref string, userID uuid.UUID, privileged bool) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, ref string, status BookingStatus, actorID uuid.UUID) (*Booking, error)
}

type service struct {
	sessions     *SessionStore
	repo         Repository
	catalog      catalog.Service
	availability availability.Service
	pricing      pricing.Service
	ledger       ledger.Service
	payments     PaymentProcessor
	notifier     Notifier
	logger       *logger.Logger
}

// NewService creates a new booking service
func NewService(
	sessions *SessionStore,
	repo Repository,
	catalogService catalog.Service,
	availabilityService availability.Service,
	pricingService pricing.Service,
	ledgerService ledger.Service,
	payments PaymentProcessor,
	notifier Notifier,
) Service {
	if payments == nil {
		payments = NewMockPaymentProcessor()
	}
	return &service{
		sessions:     sessions,
		repo:         repo,
		catalog:      catalogService,
		availability: availabilityService,
		pricing:      pricingService,
		ledger:       ledgerService,
		payments:     payments,
		notifier:     notifier,
		logger:       logger.GetDefault(),
	}
}

// ============= SESSION FLOW =============

func (s *service) StartSession(ctx context.Context, userID, venueID uuid.UUID) (*Session, error) {
	if _, err := s.catalog.GetVenue(ctx, venueID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		VenueID:   venueID,
		State:     StateSelectingExperiences,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

func (s *service) GetSession(ctx context.Context, sessionID, userID uuid.UUID) (*Session, error) {
	return s.loadOwnedSession(ctx, sessionID, userID)
}

func (s *service) SelectExperiences(ctx context.Context, sessionID, userID uuid.UUID, experienceIDs []uuid.UUID) (*Session, error) {
	session, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.rewindTo(session, StateSelectingExperiences); err != nil {
		return nil, err
	}

	if _, err := s.catalog.GetExperiencesByIDs(ctx, session.VenueID, experienceIDs); err != nil {
		return nil, err
	}

	// A selection whose schedules never line up is rejected here, before the
	// tourist is sent to slot selection. The session stays where it is so the
	// selection can be revised.
	slots, err := s.availability.CommonSlots(ctx, session.VenueID, experienceIDs)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, availability.ErrNoCommonAvailability
	}

	session.ExperienceIDs = experienceIDs
	// A changed selection invalidates everything chosen after it.
	session.Date = ""
	session.Time = ""
	session.Adults = 0
	session.Children = 0
	session.Details = nil
	session.Currency = ""
	session.QuoteCents = 0

	if err := session.Transition(StateSelectingSlot); err != nil {
		return nil, err
	}
	return session, s.sessions.Save(ctx, session)
}

func (s *service) SelectSlot(ctx context.Context, sessionID, userID uuid.UUID, date, timeOfDay string) (*Session, error) {
	session, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.rewindTo(session, StateSelectingSlot); err != nil {
		return nil, err
	}

	if _, err := s.availability.ValidateSelection(ctx, session.VenueID, session.ExperienceIDs, date, timeOfDay); err != nil {
		return nil, err
	}

	session.Date = date
	session.Time = timeOfDay
	if err := session.Transition(StateSelectingGuests); err != nil {
		return nil, err
	}
	return session, s.sessions.Save(ctx, session)
}

func (s *service) SetGuests(ctx context.Context, sessionID, userID uuid.UUID, adults, children int) (*Session, error) {
	session, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.rewindTo(session, StateSelectingGuests); err != nil {
		return nil, err
	}

	if adults < 0 || children < 0 || adults+children < 1 {
		return nil, ErrInvalidGuests
	}
	// Party size never gates the slot; a booking holds one unit for the whole
	// group. The slot just has to still be offered.
	if _, err := s.availability.ValidateSelection(ctx, session.VenueID, session.ExperienceIDs, session.Date, session.Time); err != nil {
		return nil, err
	}

	session.Adults = adults
	session.Children = children
	if err := session.Transition(StateAwaitingDetails); err != nil {
		return nil, err
	}
	return session, s.sessions.Save(ctx, session)
}

func (s *service) SetDetails(ctx context.Context, sessionID, userID uuid.UUID, details TouristDetails) (*Session, error) {
	session, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.rewindTo(session, StateAwaitingDetails); err != nil {
		return nil, err
	}

	currency := s.pricing.CurrencyForCountry(details.Country)
	quote, err := s.quoteSession(ctx, session, currency)
	if err != nil {
		return nil, err
	}

	session.Details = &details
	session.Currency = currency
	session.QuoteCents = quote.TotalCents
	if err := session.Transition(StateAwaitingPayment); err != nil {
		return nil, err
	}
	return session, s.sessions.Save(ctx, session)
}

// Confirm reserves capacity, charges the tourist and persists the booking.
// Capacity is only ever taken here; an abandoned session has consumed
// nothing. On a capacity conflict the session drops back to slot selection
// so the tourist can pick again from fresh availability.
func (s *service) Confirm(ctx context.Context, sessionID, userID uuid.UUID, paymentMethod string) (*Booking, error) {
	session, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.State != StateAwaitingPayment {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, session.State, StateConfirmed)
	}

	// The ledger takes one unit per guest group, whatever the party size.
	reservation, err := s.ledger.Reserve(ctx, ledger.ReserveRequest{
		VenueID:       session.VenueID,
		ExperienceIDs: session.ExperienceIDs,
		Date:          session.Date,
		Time:          session.Time,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrCapacityExceeded) || errors.Is(err, ledger.ErrSlotNotFound) {
			if terr := session.Transition(StateSelectingSlot); terr == nil {
				session.Date = ""
				session.Time = ""
				_ = s.sessions.Save(ctx, session)
			}
		}
		return nil, err
	}

	quote, err := s.quoteSession(ctx, session, session.Currency)
	if err != nil {
		s.releaseQuietly(ctx, reservation.Token)
		return nil, err
	}

	ref, err := generateBookingRef()
	if err != nil {
		s.releaseQuietly(ctx, reservation.Token)
		return nil, fmt.Errorf("failed to generate booking reference: %w", err)
	}

	transactionID, err := s.payments.Charge(ctx, quote.TotalCents, quote.Currency, paymentMethod)
	if err != nil {
		s.releaseQuietly(ctx, reservation.Token)
		if terr := session.Transition(StateFailed); terr == nil {
			_ = s.sessions.Save(ctx, session)
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	booking := &Booking{
		BookingRef:       ref,
		UserID:           session.UserID,
		VenueID:          session.VenueID,
		Date:             session.Date,
		Time:             session.Time,
		Adults:           session.Adults,
		Children:         session.Children,
		TotalCents:       quote.TotalCents,
		Currency:         quote.Currency,
		Status:           StatusConfirmed,
		ReservationToken: reservation.Token,
	}
	if session.Details != nil {
		booking.GuestName = session.Details.FullName
		booking.GuestEmail = session.Details.Email
		booking.GuestPhone = session.Details.Phone
		booking.NICPassportNumber = session.Details.NICPassportNumber
		booking.GuestCountry = session.Details.Country
		booking.GuestCity = session.Details.City
	}
	for _, item := range quote.Items {
		expID, _ := uuid.Parse(item.ExperienceID)
		booking.Experiences = append(booking.Experiences, BookingExperience{
			ExperienceID:   expID,
			ExperienceName: item.ExperienceName,
			AdultUnitCents: item.AdultUnitCents,
			ChildUnitCents: item.ChildUnitCents,
			SubtotalCents:  item.SubtotalCents,
		})
	}
	booking.Payment = &Payment{
		TransactionID: transactionID,
		AmountCents:   quote.TotalCents,
		Currency:      quote.Currency,
		Status:        PaymentCompleted,
		Method:        paymentMethod,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.releaseQuietly(ctx, reservation.Token)
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	session.BookingRef = ref
	if terr := session.Transition(StateConfirmed); terr == nil {
		_ = s.sessions.Save(ctx, session)
	}

	s.logger.LogBookingConfirmed(ctx, ref, session.VenueID.String(), userID.String())
	if s.notifier != nil {
		s.notifier.BookingConfirmed(ctx, booking)
	}
	return booking, nil
}

func (s *service) CancelSession(ctx context.Context, sessionID, userID uuid.UUID) (*Session, error) {
	session, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := session.Transition(StateCancelled); err != nil {
		return nil, err
	}
	return session, s.sessions.Save(ctx, session)
}

// ============= BOOKINGS =============

func (s *service) GetBooking(ctx context.Context, ref string, userID uuid.UUID, privileged bool) (*Booking, error) {
	booking, err := s.repo.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !privileged && booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	return booking, nil
}

func (s *service) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) ListVenueBookings(ctx context.Context, venueID uuid.UUID) ([]Booking, error) {
	return s.repo.GetByVenueID(ctx, venueID)
}

// CancelBooking releases the booking's capacity hold and marks it cancelled.
// Retries are safe: a hold that was already released is left alone.
func (s *service) CancelBooking(ctx context.Context, ref string, userID uuid.UUID, privileged bool) (*Booking, error) {
	booking, err := s.GetBooking(ctx, ref, userID, privileged)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(StatusCancelled) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, StatusCancelled)
	}

	if booking.ReservationToken != "" {
		if err := s.ledger.Release(ctx, booking.ReservationToken); err != nil &&
			!errors.Is(err, ledger.ErrReservationReleased) {
			return nil, fmt.Errorf("failed to release capacity: %w", err)
		}
	}

	if err := s.repo.UpdateStatus(ctx, booking.ID, StatusCancelled); err != nil {
		return nil, err
	}
	if booking.Payment != nil {
		if err := s.repo.UpdatePaymentStatus(ctx, booking.ID, PaymentRefunded); err != nil {
			s.logger.Error("failed to mark payment refunded", "booking_ref", ref, "error", err)
		}
	}
	booking.Status = StatusCancelled

	s.logger.LogBookingCancelled(ctx, ref, booking.VenueID.String(), userID.String())
	if s.notifier != nil {
		s.notifier.BookingCancelled(ctx, booking)
	}
	return booking, nil
}

// UpdateBookingStatus is the management hook for moving a booking along its
// lifecycle. Cancelling through it releases capacity the same way a tourist
// cancellation does.
func (s *service) UpdateBookingStatus(ctx context.Context, ref string, status BookingStatus, actorID uuid.UUID) (*Booking, error) {
	if status == StatusCancelled {
		return s.CancelBooking(ctx, ref, actorID, true)
	}

	booking, err := s.repo.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
	}
	if err := s.repo.UpdateStatus(ctx, booking.ID, status); err != nil {
		return nil, err
	}
	booking.Status = status
	return booking, nil
}

// ============= HELPERS =============

func (s *service) loadOwnedSession(ctx context.Context, sessionID, userID uuid.UUID) (*Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

// backwardEdge is the single legal step back from each revisable state.
var backwardEdge = map[FlowState]FlowState{
	StateSelectingSlot:   StateSelectingExperiences,
	StateSelectingGuests: StateSelectingSlot,
	StateAwaitingDetails: StateSelectingGuests,
	StateAwaitingPayment: StateSelectingSlot,
}

// rewindTo walks the session back to target so an earlier step can be
// revised. Terminal sessions and unreachable targets are rejected.
func (s *service) rewindTo(session *Session, target FlowState) error {
	for session.State != target {
		prev, ok := backwardEdge[session.State]
		if !ok {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, session.State, target)
		}
		if err := session.Transition(prev); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) quoteSession(ctx context.Context, session *Session, currency pricing.Currency) (*pricing.Quote, error) {
	experiences, err := s.catalog.GetExperiencesByIDs(ctx, session.VenueID, session.ExperienceIDs)
	if err != nil {
		return nil, err
	}
	return s.pricing.Price(experiences, pricing.GuestCounts{
		Adults:   session.Adults,
		Children: session.Children,
	}, currency)
}

func (s *service) releaseQuietly(ctx context.Context, token string) {
	if err := s.ledger.Release(ctx, token); err != nil && !errors.Is(err, ledger.ErrReservationReleased) {
		s.logger.Error("failed to release reservation", "token", token, "error", err)
	}
}

const refCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateBookingRef builds a human readable reference like
// TEA-20260115-X7K2QD.
func generateBookingRef() (string, error) {
	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(refCharset))))
		if err != nil {
			return "", err
		}
		suffix[i] = refCharset[n.Int64()]
	}
	return fmt.Sprintf("TEA-%s-%s", time.Now().UTC().Format("20060102"), string(suffix)), nil
}

// mockPaymentProcessor settles every charge. Stands in for a real gateway.
type mockPaymentProcessor struct{}

// NewMockPaymentProcessor creates the default mock gateway
func NewMockPaymentProcessor() PaymentProcessor {
	return &mockPaymentProcessor{}
}

func (p *mockPaymentProcessor) Charge(ctx context.Context, amountCents int64, currency pricing.Currency, method string) (string, error) {
	id := uuid.New().String()
	return fmt.Sprintf("TXN_%d_%s", time.Now().Unix(), id[:8]), nil
}
