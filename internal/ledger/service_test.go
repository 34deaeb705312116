package ledger

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teatrails/internal/catalog"
)

// fakeRepo is an in-memory Repository. WithTx serializes transactions with a
// mutex, mirroring the exclusion the real repository gets from row locks.
type fakeRepo struct {
	mu           sync.Mutex
	slots        map[uuid.UUID]*catalog.TimeSlot
	reservations map[string]*Reservation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		slots:        make(map[uuid.UUID]*catalog.TimeSlot),
		reservations: make(map[string]*Reservation),
	}
}

func (f *fakeRepo) addSlot(experienceID uuid.UUID, date, timeOfDay string, capacity, booked int) uuid.UUID {
	id := uuid.New()
	f.slots[id] = &catalog.TimeSlot{
		ID:           id,
		ExperienceID: experienceID,
		Date:         date,
		Time:         timeOfDay,
		Capacity:     capacity,
		Booked:       booked,
	}
	return id
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(txRepo Repository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Snapshot so a failed transaction rolls back.
	slotCopy := make(map[uuid.UUID]*catalog.TimeSlot, len(f.slots))
	for id, slot := range f.slots {
		c := *slot
		slotCopy[id] = &c
	}
	resCopy := make(map[string]*Reservation, len(f.reservations))
	for token, res := range f.reservations {
		c := *res
		resCopy[token] = &c
	}

	if err := fn(&fakeTx{repo: f}); err != nil {
		f.slots = slotCopy
		f.reservations = resCopy
		return err
	}
	return nil
}

func (f *fakeRepo) LockSlots(ctx context.Context, experienceIDs []uuid.UUID, date, timeOfDay string) ([]catalog.TimeSlot, error) {
	var out []catalog.TimeSlot
	for _, slot := range f.slots {
		for _, expID := range experienceIDs {
			if slot.ExperienceID == expID && slot.Date == date && slot.Time == timeOfDay {
				out = append(out, *slot)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ExperienceID.String() < out[j].ExperienceID.String()
	})
	return out, nil
}

func (f *fakeRepo) AdjustBooked(ctx context.Context, slotID uuid.UUID, delta int) error {
	slot, ok := f.slots[slotID]
	if !ok {
		return ErrSlotNotFound
	}
	slot.Booked += delta
	return nil
}

func (f *fakeRepo) CreateReservation(ctx context.Context, reservation *Reservation) error {
	reservation.ID = uuid.New()
	f.reservations[reservation.Token] = reservation
	return nil
}

func (f *fakeRepo) GetReservationByToken(ctx context.Context, token string) (*Reservation, error) {
	res, ok := f.reservations[token]
	if !ok {
		return nil, ErrReservationNotFound
	}
	c := *res
	return &c, nil
}

func (f *fakeRepo) GetReservationByTokenForUpdate(ctx context.Context, token string) (*Reservation, error) {
	return f.GetReservationByToken(ctx, token)
}

func (f *fakeRepo) UpdateReservationStatus(ctx context.Context, id uuid.UUID, status ReservationStatus) error {
	for _, res := range f.reservations {
		if res.ID == id {
			res.Status = status
			return nil
		}
	}
	return ErrReservationNotFound
}

// fakeTx keeps operations inside WithTx working on the live maps while the
// outer mutex is held.
type fakeTx struct {
	repo *fakeRepo
}

func (t *fakeTx) WithTx(ctx context.Context, fn func(txRepo Repository) error) error {
	return fn(t)
}

func (t *fakeTx) LockSlots(ctx context.Context, ids []uuid.UUID, date, timeOfDay string) ([]catalog.TimeSlot, error) {
	return t.repo.LockSlots(ctx, ids, date, timeOfDay)
}

func (t *fakeTx) AdjustBooked(ctx context.Context, slotID uuid.UUID, delta int) error {
	return t.repo.AdjustBooked(ctx, slotID, delta)
}

func (t *fakeTx) CreateReservation(ctx context.Context, r *Reservation) error {
	return t.repo.CreateReservation(ctx, r)
}

func (t *fakeTx) GetReservationByToken(ctx context.Context, token string) (*Reservation, error) {
	return t.repo.GetReservationByToken(ctx, token)
}

func (t *fakeTx) GetReservationByTokenForUpdate(ctx context.Context, token string) (*Reservation, error) {
	return t.repo.GetReservationByTokenForUpdate(ctx, token)
}

func (t *fakeTx) UpdateReservationStatus(ctx context.Context, id uuid.UUID, status ReservationStatus) error {
	return t.repo.UpdateReservationStatus(ctx, id, status)
}

func TestReserveTakesOneUnitFromEverySlot(t *testing.T) {
	repo := newFakeRepo()
	tourID, tastingID := uuid.New(), uuid.New()
	tourSlot := repo.addSlot(tourID, "2026-01-15", "09:00", 20, 0)
	tastingSlot := repo.addSlot(tastingID, "2026-01-15", "09:00", 8, 0)
	svc := NewService(repo)

	reservation, err := svc.Reserve(context.Background(), ReserveRequest{
		VenueID:       uuid.New(),
		ExperienceIDs: []uuid.UUID{tourID, tastingID},
		Date:          "2026-01-15",
		Time:          "09:00",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusActive, reservation.Status)
	assert.Len(t, reservation.Slots, 2)
	assert.Equal(t, 1, repo.slots[tourSlot].Booked)
	assert.Equal(t, 1, repo.slots[tastingSlot].Booked)
}

func TestReserveIsAllOrNothing(t *testing.T) {
	repo := newFakeRepo()
	tourID, tastingID := uuid.New(), uuid.New()
	tourSlot := repo.addSlot(tourID, "2026-01-15", "09:00", 20, 0)
	tastingSlot := repo.addSlot(tastingID, "2026-01-15", "09:00", 8, 8)
	svc := NewService(repo)

	_, err := svc.Reserve(context.Background(), ReserveRequest{
		VenueID:       uuid.New(),
		ExperienceIDs: []uuid.UUID{tourID, tastingID},
		Date:          "2026-01-15",
		Time:          "09:00",
	})
	require.ErrorIs(t, err, ErrCapacityExceeded)

	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, tastingID, capErr.ExperienceID)
	assert.Equal(t, 0, capErr.Available)

	// Nothing was taken from either slot.
	assert.Equal(t, 0, repo.slots[tourSlot].Booked)
	assert.Equal(t, 8, repo.slots[tastingSlot].Booked)
}

func TestReserveMissingSlot(t *testing.T) {
	repo := newFakeRepo()
	tourID := uuid.New()
	repo.addSlot(tourID, "2026-01-15", "09:00", 20, 0)
	svc := NewService(repo)

	_, err := svc.Reserve(context.Background(), ReserveRequest{
		VenueID:       uuid.New(),
		ExperienceIDs: []uuid.UUID{tourID, uuid.New()},
		Date:          "2026-01-15",
		Time:          "09:00",
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestReserveValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Reserve(ctx, ReserveRequest{Date: "2026-01-15", Time: "09:00"})
	assert.ErrorIs(t, err, ErrInvalidReservation)

	_, err = svc.Reserve(ctx, ReserveRequest{ExperienceIDs: []uuid.UUID{uuid.New()}, Time: "09:00"})
	assert.ErrorIs(t, err, ErrInvalidReservation)
}

func TestConcurrentReservesNeverOverbook(t *testing.T) {
	repo := newFakeRepo()
	expID := uuid.New()
	slotID := repo.addSlot(expID, "2026-01-15", "09:00", 10, 0)
	svc := NewService(repo)

	const attempts = 25
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), ReserveRequest{
				VenueID:       uuid.New(),
				ExperienceIDs: []uuid.UUID{expID},
				Date:          "2026-01-15",
				Time:          "09:00",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrCapacityExceeded):
			rejected++
		}
	}

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, attempts-10, rejected)
	assert.Equal(t, 10, repo.slots[slotID].Booked)
}

func TestReleaseReturnsUnitsExactlyOnce(t *testing.T) {
	repo := newFakeRepo()
	expID := uuid.New()
	slotID := repo.addSlot(expID, "2026-01-15", "09:00", 10, 0)
	svc := NewService(repo)

	reservation, err := svc.Reserve(context.Background(), ReserveRequest{
		VenueID:       uuid.New(),
		ExperienceIDs: []uuid.UUID{expID},
		Date:          "2026-01-15",
		Time:          "09:00",
	})
	require.NoError(t, err)
	require.Equal(t, 1, repo.slots[slotID].Booked)

	require.NoError(t, svc.Release(context.Background(), reservation.Token))
	assert.Equal(t, 0, repo.slots[slotID].Booked)

	// A retried release must not double-free.
	err = svc.Release(context.Background(), reservation.Token)
	assert.ErrorIs(t, err, ErrReservationReleased)
	assert.Equal(t, 0, repo.slots[slotID].Booked)
}

func TestReleaseUnknownToken(t *testing.T) {
	svc := NewService(newFakeRepo())
	err := svc.Release(context.Background(), "RSV-DOESNOTEXIST")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestReserveDeduplicatesExperienceIDs(t *testing.T) {
	repo := newFakeRepo()
	expID := uuid.New()
	slotID := repo.addSlot(expID, "2026-01-15", "09:00", 10, 0)
	svc := NewService(repo)

	_, err := svc.Reserve(context.Background(), ReserveRequest{
		VenueID:       uuid.New(),
		ExperienceIDs: []uuid.UUID{expID, expID},
		Date:          "2026-01-15",
		Time:          "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.slots[slotID].Booked)
}
