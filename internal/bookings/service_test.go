package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teatrails/internal/availability"
	"teatrails/internal/catalog"
	"teatrails/internal/ledger"
	"teatrails/internal/pricing"
	"teatrails/pkg/cache"
)

// memoryCache is an in-memory cache.Service for session storage in tests.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (m *memoryCache) Exists(ctx context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func (m *memoryCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := m.Get(ctx, key, dest); err == nil {
		return nil
	}
	value, err := fetcher()
	if err != nil {
		return err
	}
	if err := m.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return m.Get(ctx, key, dest)
}

func (m *memoryCache) Ping(ctx context.Context) error { return nil }

// fakeCatalog serves a fixed venue with its experiences.
type fakeCatalog struct {
	catalog.Service
	venueID     uuid.UUID
	experiences []catalog.Experience
}

func (f *fakeCatalog) GetVenue(ctx context.Context, id uuid.UUID) (*catalog.VenueDetailResponse, error) {
	if id != f.venueID {
		return nil, catalog.ErrVenueNotFound
	}
	return &catalog.VenueDetailResponse{ID: id.String()}, nil
}

func (f *fakeCatalog) GetExperiencesByIDs(ctx context.Context, venueID uuid.UUID, ids []uuid.UUID) ([]catalog.Experience, error) {
	if venueID != f.venueID {
		return nil, catalog.ErrVenueNotFound
	}
	var out []catalog.Experience
	for _, id := range ids {
		found := false
		for _, exp := range f.experiences {
			if exp.ID == id {
				out = append(out, exp)
				found = true
				break
			}
		}
		if !found {
			return nil, catalog.ErrExperienceNotFound
		}
	}
	return out, nil
}

// fakeLedger tracks booked counters per experience slot in memory.
type fakeLedger struct {
	mu           sync.Mutex
	slots        map[string]*catalog.TimeSlot // key experienceID|date|time
	reservations map[string]*ledger.Reservation
}

func newFakeLedger(experiences []catalog.Experience) *fakeLedger {
	f := &fakeLedger{
		slots:        make(map[string]*catalog.TimeSlot),
		reservations: make(map[string]*ledger.Reservation),
	}
	for _, exp := range experiences {
		for i := range exp.TimeSlots {
			slot := exp.TimeSlots[i]
			slot.ExperienceID = exp.ID
			f.slots[slotKey(exp.ID, slot.Date, slot.Time)] = &slot
		}
	}
	return f
}

func slotKey(expID uuid.UUID, date, timeOfDay string) string {
	return fmt.Sprintf("%s|%s|%s", expID, date, timeOfDay)
}

func (f *fakeLedger) booked(expID uuid.UUID, date, timeOfDay string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots[slotKey(expID, date, timeOfDay)].Booked
}

func (f *fakeLedger) Reserve(ctx context.Context, req ledger.ReserveRequest) (*ledger.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var locked []*catalog.TimeSlot
	for _, expID := range req.ExperienceIDs {
		slot, ok := f.slots[slotKey(expID, req.Date, req.Time)]
		if !ok {
			return nil, ledger.ErrSlotNotFound
		}
		if slot.Available() < 1 {
			return nil, &ledger.CapacityError{
				ExperienceID: expID,
				Date:         req.Date,
				Time:         req.Time,
				Available:    slot.Available(),
			}
		}
		locked = append(locked, slot)
	}

	reservation := &ledger.Reservation{
		ID:      uuid.New(),
		Token:   "RSV-" + uuid.New().String()[:12],
		VenueID: req.VenueID,
		Date:    req.Date,
		Time:    req.Time,
		Status:  ledger.StatusActive,
	}
	for _, slot := range locked {
		slot.Booked++
		reservation.Slots = append(reservation.Slots, ledger.ReservationSlot{
			TimeSlotID:   slot.ID,
			ExperienceID: slot.ExperienceID,
		})
	}
	f.reservations[reservation.Token] = reservation
	return reservation, nil
}

func (f *fakeLedger) Release(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	reservation, ok := f.reservations[token]
	if !ok {
		return ledger.ErrReservationNotFound
	}
	if reservation.Status == ledger.StatusReleased {
		return ledger.ErrReservationReleased
	}
	for _, rs := range reservation.Slots {
		for _, slot := range f.slots {
			if slot.ID == rs.TimeSlotID {
				slot.Booked--
			}
		}
	}
	reservation.Status = ledger.StatusReleased
	return nil
}

func (f *fakeLedger) GetReservation(ctx context.Context, token string) (*ledger.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reservation, ok := f.reservations[token]
	if !ok {
		return nil, ledger.ErrReservationNotFound
	}
	return reservation, nil
}

// fakeBookingRepo stores bookings in memory.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking.ID = uuid.New()
	f.bookings[booking.BookingRef] = booking
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			c := *b
			return &c, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByRef(ctx context.Context, ref string) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[ref]
	if !ok {
		return nil, ErrBookingNotFound
	}
	c := *b
	return &c, nil
}

func (f *fakeBookingRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByVenueID(ctx context.Context, venueID uuid.UUID) ([]Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Booking
	for _, b := range f.bookings {
		if b.VenueID == venueID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return ErrBookingNotFound
}

func (f *fakeBookingRepo) UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, status PaymentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == bookingID && b.Payment != nil {
			b.Payment.Status = status
			return nil
		}
	}
	return nil
}

// failingProcessor rejects every charge.
type failingProcessor struct{}

func (failingProcessor) Charge(ctx context.Context, amountCents int64, currency pricing.Currency, method string) (string, error) {
	return "", errors.New("gateway declined")
}

// recordingNotifier captures published events.
type recordingNotifier struct {
	mu        sync.Mutex
	confirmed []string
	cancelled []string
}

func (n *recordingNotifier) BookingConfirmed(ctx context.Context, booking *Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, booking.BookingRef)
}

func (n *recordingNotifier) BookingCancelled(ctx context.Context, booking *Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, booking.BookingRef)
}

// ============= FIXTURE =============

type fixture struct {
	svc      Service
	repo     *fakeBookingRepo
	ledger   *fakeLedger
	notifier *recordingNotifier

	venueID  uuid.UUID
	tour     catalog.Experience
	tasting  catalog.Experience
	plucking catalog.Experience
	userID   uuid.UUID
}

func newFixture(t *testing.T, processor PaymentProcessor) *fixture {
	t.Helper()

	venueID := uuid.New()
	tour := catalog.Experience{
		ID:                 uuid.New(),
		VenueID:            venueID,
		Name:               "Tea Factory Tour",
		AdultPriceUSDCents: 1000,
		ChildPriceUSDCents: 500,
		TimeSlots: []catalog.TimeSlot{
			{ID: uuid.New(), Date: "2026-01-15", Time: "09:00", Capacity: 20, Booked: 0},
			{ID: uuid.New(), Date: "2026-01-15", Time: "14:00", Capacity: 4, Booked: 0},
		},
	}
	tasting := catalog.Experience{
		ID:                 uuid.New(),
		VenueID:            venueID,
		Name:               "Tea Tasting Session",
		AdultPriceUSDCents: 1500,
		ChildPriceUSDCents: 750,
		TimeSlots: []catalog.TimeSlot{
			{ID: uuid.New(), Date: "2026-01-15", Time: "09:00", Capacity: 8, Booked: 0},
		},
	}
	// Early morning only, never overlapping the tasting.
	plucking := catalog.Experience{
		ID:                 uuid.New(),
		VenueID:            venueID,
		Name:               "Tea Plucking Experience",
		AdultPriceUSDCents: 2000,
		ChildPriceUSDCents: 1000,
		TimeSlots: []catalog.TimeSlot{
			{ID: uuid.New(), Date: "2026-01-16", Time: "07:00", Capacity: 12, Booked: 0},
		},
	}

	cat := &fakeCatalog{venueID: venueID, experiences: []catalog.Experience{tour, tasting, plucking}}
	led := newFakeLedger(cat.experiences)
	repo := newFakeBookingRepo()
	notifier := &recordingNotifier{}
	sessions := NewSessionStore(newMemoryCache(), 30*time.Minute)

	svc := NewService(
		sessions,
		repo,
		cat,
		availability.NewService(cat),
		pricing.NewService(),
		led,
		processor,
		notifier,
	)

	return &fixture{
		svc:      svc,
		repo:     repo,
		ledger:   led,
		notifier: notifier,
		venueID:  venueID,
		tour:     tour,
		tasting:  tasting,
		plucking: plucking,
		userID:   uuid.New(),
	}
}

func (f *fixture) advanceToPayment(t *testing.T) *Session {
	t.Helper()
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, f.userID, f.venueID)
	require.NoError(t, err)

	session, err = f.svc.SelectExperiences(ctx, session.ID, f.userID, []uuid.UUID{f.tour.ID, f.tasting.ID})
	require.NoError(t, err)
	require.Equal(t, StateSelectingSlot, session.State)

	session, err = f.svc.SelectSlot(ctx, session.ID, f.userID, "2026-01-15", "09:00")
	require.NoError(t, err)
	require.Equal(t, StateSelectingGuests, session.State)

	session, err = f.svc.SetGuests(ctx, session.ID, f.userID, 2, 1)
	require.NoError(t, err)
	require.Equal(t, StateAwaitingDetails, session.State)

	session, err = f.svc.SetDetails(ctx, session.ID, f.userID, TouristDetails{
		FullName:          "Amara Perera",
		Email:             "amara@example.com",
		Phone:             "+94 77 123 4567",
		NICPassportNumber: "N1234567",
		Country:           "Germany",
		City:              "Berlin",
	})
	require.NoError(t, err)
	require.Equal(t, StateAwaitingPayment, session.State)
	return session
}

// ============= TESTS =============

func TestFullBookingFlow(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	session := f.advanceToPayment(t)
	// 2 adults + 1 child: tour 25.00, tasting 37.50.
	assert.Equal(t, int64(6250), session.QuoteCents)
	assert.Equal(t, pricing.CurrencyUSD, session.Currency)

	booking, err := f.svc.Confirm(ctx, session.ID, f.userID, "CARD")
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, booking.Status)
	assert.Regexp(t, `^TEA-\d{8}-[A-Z0-9]{6}$`, booking.BookingRef)
	assert.Equal(t, int64(6250), booking.TotalCents)
	assert.Len(t, booking.Experiences, 2)
	require.NotNil(t, booking.Payment)
	assert.Equal(t, PaymentCompleted, booking.Payment.Status)

	// The whole party holds a single unit in each contributing slot.
	assert.Equal(t, 1, f.ledger.booked(f.tour.ID, "2026-01-15", "09:00"))
	assert.Equal(t, 1, f.ledger.booked(f.tasting.ID, "2026-01-15", "09:00"))

	assert.Equal(t, []string{booking.BookingRef}, f.notifier.confirmed)

	stored, err := f.svc.GetBooking(ctx, booking.BookingRef, f.userID, false)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, stored.ID)
}

func TestSriLankanTouristBilledInRupees(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, f.userID, f.venueID)
	require.NoError(t, err)
	session, err = f.svc.SelectExperiences(ctx, session.ID, f.userID, []uuid.UUID{f.tour.ID})
	require.NoError(t, err)
	session, err = f.svc.SelectSlot(ctx, session.ID, f.userID, "2026-01-15", "09:00")
	require.NoError(t, err)
	session, err = f.svc.SetGuests(ctx, session.ID, f.userID, 1, 0)
	require.NoError(t, err)
	session, err = f.svc.SetDetails(ctx, session.ID, f.userID, TouristDetails{
		FullName: "Nimal Silva", Email: "nimal@example.com", Phone: "+94 71 000 0000",
		NICPassportNumber: "851234567V", Country: "Sri Lanka", City: "Kandy",
	})
	require.NoError(t, err)

	assert.Equal(t, pricing.CurrencyLKR, session.Currency)
	assert.Equal(t, int64(1000*330), session.QuoteCents)
}

func TestConfirmRequiresPaymentState(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, f.userID, f.venueID)
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, session.ID, f.userID, "CARD")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAbandonedSessionConsumesNoCapacity(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	session := f.advanceToPayment(t)
	_, err := f.svc.CancelSession(ctx, session.ID, f.userID)
	require.NoError(t, err)

	assert.Equal(t, 0, f.ledger.booked(f.tour.ID, "2026-01-15", "09:00"))
	assert.Equal(t, 0, f.ledger.booked(f.tasting.ID, "2026-01-15", "09:00"))
}

func TestCapacityConflictDropsSessionBackToSlotSelection(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	session := f.advanceToPayment(t)

	// Eight rival groups fill the tasting out from under them.
	for i := 0; i < 8; i++ {
		_, err := f.ledger.Reserve(ctx, ledger.ReserveRequest{
			VenueID:       f.venueID,
			ExperienceIDs: []uuid.UUID{f.tasting.ID},
			Date:          "2026-01-15",
			Time:          "09:00",
		})
		require.NoError(t, err)
	}

	_, err := f.svc.Confirm(ctx, session.ID, f.userID, "CARD")
	require.ErrorIs(t, err, ledger.ErrCapacityExceeded)

	// No partial hold was left behind.
	assert.Equal(t, 0, f.ledger.booked(f.tour.ID, "2026-01-15", "09:00"))
	assert.Equal(t, 8, f.ledger.booked(f.tasting.ID, "2026-01-15", "09:00"))

	// The session went back to slot selection with the stale slot cleared.
	session, err = f.svc.GetSession(ctx, session.ID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, StateSelectingSlot, session.State)
	assert.Empty(t, session.Date)
}

func TestPaymentFailureReleasesCapacity(t *testing.T) {
	f := newFixture(t, failingProcessor{})
	ctx := context.Background()

	session := f.advanceToPayment(t)

	_, err := f.svc.Confirm(ctx, session.ID, f.userID, "CARD")
	require.ErrorIs(t, err, ErrPaymentFailed)

	assert.Equal(t, 0, f.ledger.booked(f.tour.ID, "2026-01-15", "09:00"))
	assert.Equal(t, 0, f.ledger.booked(f.tasting.ID, "2026-01-15", "09:00"))

	session, err = f.svc.GetSession(ctx, session.ID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, session.State)
	assert.Empty(t, f.notifier.confirmed)
}

func TestCancelBookingFreesCapacityOnce(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	session := f.advanceToPayment(t)
	booking, err := f.svc.Confirm(ctx, session.ID, f.userID, "CARD")
	require.NoError(t, err)
	require.Equal(t, 1, f.ledger.booked(f.tour.ID, "2026-01-15", "09:00"))

	cancelled, err := f.svc.CancelBooking(ctx, booking.BookingRef, f.userID, false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, 0, f.ledger.booked(f.tour.ID, "2026-01-15", "09:00"))
	assert.Equal(t, []string{booking.BookingRef}, f.notifier.cancelled)

	// A second cancel is rejected and does not double-free.
	_, err = f.svc.CancelBooking(ctx, booking.BookingRef, f.userID, false)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 0, f.ledger.booked(f.tour.ID, "2026-01-15", "09:00"))
}

func TestBookingOwnershipEnforced(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	session := f.advanceToPayment(t)
	booking, err := f.svc.Confirm(ctx, session.ID, f.userID, "CARD")
	require.NoError(t, err)

	stranger := uuid.New()
	_, err = f.svc.GetBooking(ctx, booking.BookingRef, stranger, false)
	assert.ErrorIs(t, err, ErrNotBookingOwner)

	// Plantation staff may look up any booking.
	_, err = f.svc.GetBooking(ctx, booking.BookingRef, stranger, true)
	assert.NoError(t, err)
}

func TestSessionOwnershipEnforced(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, f.userID, f.venueID)
	require.NoError(t, err)

	_, err = f.svc.GetSession(ctx, session.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotSessionOwner)
}

func TestRevisingExperiencesClearsDownstreamChoices(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	session := f.advanceToPayment(t)

	session, err := f.svc.SelectExperiences(ctx, session.ID, f.userID, []uuid.UUID{f.tour.ID})
	require.NoError(t, err)

	assert.Equal(t, StateSelectingSlot, session.State)
	assert.Empty(t, session.Date)
	assert.Zero(t, session.Adults)
	assert.Nil(t, session.Details)
	assert.Zero(t, session.QuoteCents)
}

func TestSelectSlotRejectsUnofferedSlot(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, f.userID, f.venueID)
	require.NoError(t, err)
	session, err = f.svc.SelectExperiences(ctx, session.ID, f.userID, []uuid.UUID{f.tour.ID, f.tasting.ID})
	require.NoError(t, err)

	// 14:00 exists only on the tour, so it is not common to the selection.
	_, err = f.svc.SelectSlot(ctx, session.ID, f.userID, "2026-01-15", "14:00")
	assert.ErrorIs(t, err, availability.ErrInvalidSelection)
}

func TestSelectExperiencesWithNoCommonSlotIsRejected(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, f.userID, f.venueID)
	require.NoError(t, err)

	// The tasting and the plucking never share a date and time.
	_, err = f.svc.SelectExperiences(ctx, session.ID, f.userID, []uuid.UUID{f.tasting.ID, f.plucking.ID})
	assert.ErrorIs(t, err, availability.ErrNoCommonAvailability)

	// The session stays put so the tourist can revise the selection.
	session, err = f.svc.GetSession(ctx, session.ID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, StateSelectingExperiences, session.State)
	assert.Empty(t, session.ExperienceIDs)

	// A workable selection still goes through afterwards.
	session, err = f.svc.SelectExperiences(ctx, session.ID, f.userID, []uuid.UUID{f.tour.ID, f.tasting.ID})
	require.NoError(t, err)
	assert.Equal(t, StateSelectingSlot, session.State)
}

func TestSetGuestsAdmitsAnyPartyWhileSlotIsOffered(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, f.userID, f.venueID)
	require.NoError(t, err)
	session, err = f.svc.SelectExperiences(ctx, session.ID, f.userID, []uuid.UUID{f.tour.ID, f.tasting.ID})
	require.NoError(t, err)
	session, err = f.svc.SelectSlot(ctx, session.ID, f.userID, "2026-01-15", "09:00")
	require.NoError(t, err)

	_, err = f.svc.SetGuests(ctx, session.ID, f.userID, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidGuests)

	// The tasting has 8 units left, but a group of 9 still needs only one.
	session, err = f.svc.SetGuests(ctx, session.ID, f.userID, 9, 0)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingDetails, session.State)

	session, err = f.svc.SetDetails(ctx, session.ID, f.userID, TouristDetails{
		FullName: "Lena Hoffmann", Email: "lena@example.com", Phone: "+49 30 000 000",
		NICPassportNumber: "C01X00T47", Country: "Germany", City: "Berlin",
	})
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, session.ID, f.userID, "CARD")
	require.NoError(t, err)
	assert.Equal(t, 1, f.ledger.booked(f.tasting.ID, "2026-01-15", "09:00"))
}

func TestManagementStatusTransitions(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	adminID := uuid.New()

	session := f.advanceToPayment(t)
	booking, err := f.svc.Confirm(ctx, session.ID, f.userID, "CARD")
	require.NoError(t, err)

	// Completing leaves the capacity hold in place.
	completed, err := f.svc.UpdateBookingStatus(ctx, booking.BookingRef, StatusCompleted, adminID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, completed.Status)
	assert.Equal(t, 1, f.ledger.booked(f.tour.ID, "2026-01-15", "09:00"))

	// A completed booking cannot move anywhere else.
	_, err = f.svc.UpdateBookingStatus(ctx, booking.BookingRef, StatusCancelled, adminID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestManagementCancelReleasesCapacity(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	adminID := uuid.New()

	session := f.advanceToPayment(t)
	booking, err := f.svc.Confirm(ctx, session.ID, f.userID, "CARD")
	require.NoError(t, err)
	require.Equal(t, 1, f.ledger.booked(f.tour.ID, "2026-01-15", "09:00"))

	cancelled, err := f.svc.UpdateBookingStatus(ctx, booking.BookingRef, StatusCancelled, adminID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, 0, f.ledger.booked(f.tour.ID, "2026-01-15", "09:00"))
}
