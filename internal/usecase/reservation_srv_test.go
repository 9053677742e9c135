package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"
	"movie-reservation/internal/usecase"
	"movie-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	state    *lockState
	seatRepo *fakeSeatRepo
	repo     *repository.Repository
	svc      usecase.ReservationService
	cfg      utils.ReservationConfig

	showtime *entity.Showtime
	seats    []*entity.Seat // A1 regular, A2 premium, A3 vip
	userID   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	state := newLockState()
	theaterID := uuid.New()

	seatRepo := &fakeSeatRepo{
		state:     state,
		theaterID: theaterID,
		seats:     make(map[uuid.UUID]*entity.Seat),
	}

	seatTypes := []entity.SeatType{entity.SeatTypeRegular, entity.SeatTypePremium, entity.SeatTypeVIP}
	var seats []*entity.Seat
	for i, st := range seatTypes {
		seat := &entity.Seat{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			TheaterID:  theaterID,
			RowLabel:   "A",
			SeatNumber: i + 1,
			SeatType:   st,
		}
		seats = append(seats, seat)
		seatRepo.seats[seat.ID] = seat
		seatRepo.order = append(seatRepo.order, seat.ID)
	}

	showtime := &entity.Showtime{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		MovieID:   uuid.New(),
		TheaterID: theaterID,
		StartTime: time.Now().Add(2 * time.Hour),
		EndTime:   time.Now().Add(4 * time.Hour),
		Price:     100,
	}

	showtimeRepo := &fakeShowtimeRepo{showtimes: map[uuid.UUID]*entity.Showtime{showtime.ID: showtime}}

	repo := &repository.Repository{
		Seat:        seatRepo,
		Showtime:    showtimeRepo,
		SeatLock:    &fakeSeatLockRepo{state: state},
		Reservation: &fakeReservationRepo{state: state},
	}

	cfg := utils.ReservationConfig{
		LockTTLMinutes:         10,
		LockWaitTimeoutSeconds: 3,
		SweepIntervalSeconds:   60,
		SweepBatchSize:         500,
		PremiumPriceMultiplier: 1.25,
		VIPPriceMultiplier:     1.5,
	}

	return &fixture{
		state:    state,
		seatRepo: seatRepo,
		repo:     repo,
		svc:      usecase.NewReservationService(&fakePgx{state: state}, repo, cfg, zap.NewNop()),
		cfg:      cfg,
		showtime: showtime,
		seats:    seats,
		userID:   uuid.New(),
	}
}

func (f *fixture) lockRequest(seats ...*entity.Seat) *request.LockSeatsRequest {
	req := &request.LockSeatsRequest{}
	for _, seat := range seats {
		req.SeatIDs = append(req.SeatIDs, seat.ID.String())
	}
	return req
}

func (f *fixture) plantLock(seat *entity.Seat, userID uuid.UUID, expiresAt time.Time) {
	f.state.locks[seat.ID] = entity.SeatLock{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		SeatID:     seat.ID,
		ShowtimeID: f.showtime.ID,
		UserID:     userID,
		ExpiresAt:  expiresAt,
	}
}

func TestLockSeats_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.LockSeats(ctx, f.userID.String(), f.showtime.ID.String(), f.lockRequest(f.seats[0], f.seats[1]))
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Len(t, resp.LockedSeatIDs, 2)
	assert.WithinDuration(t, time.Now().Add(f.cfg.LockTTL()), resp.ExpiresAt, 5*time.Second)

	lock, ok := f.state.locks[f.seats[0].ID]
	require.True(t, ok, "lock row should be committed")
	assert.Equal(t, f.userID, lock.UserID)
	assert.Equal(t, f.showtime.ID, lock.ShowtimeID)
}

func TestLockSeats_HeldByOtherUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	otherUser := uuid.New()
	f.plantLock(f.seats[0], otherUser, time.Now().Add(5*time.Minute))

	resp, err := f.svc.LockSeats(ctx, f.userID.String(), f.showtime.ID.String(), f.lockRequest(f.seats[0], f.seats[1]))
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, repository.ErrSeatUnavailable)

	var conflict *repository.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []uuid.UUID{f.seats[0].ID}, conflict.SeatIDs)

	// A partial failure must not leave locks on the free seat.
	_, locked := f.state.locks[f.seats[1].ID]
	assert.False(t, locked, "no lock may survive a failed acquire")
}

func TestLockSeats_RenewalExtendsOwnLock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	nearExpiry := time.Now().Add(30 * time.Second)
	f.plantLock(f.seats[0], f.userID, nearExpiry)

	resp, err := f.svc.LockSeats(ctx, f.userID.String(), f.showtime.ID.String(), f.lockRequest(f.seats[0]))
	require.NoError(t, err)

	assert.True(t, resp.ExpiresAt.After(nearExpiry), "renewal should grant a fresh TTL")
	lock := f.state.locks[f.seats[0].ID]
	assert.Equal(t, f.userID, lock.UserID)
	assert.True(t, lock.ExpiresAt.After(nearExpiry))
}

func TestLockSeats_ExpiredLockOfOtherUserIsReplaced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Stale row the sweeper has not removed yet.
	f.plantLock(f.seats[0], uuid.New(), time.Now().Add(-1*time.Minute))

	resp, err := f.svc.LockSeats(ctx, f.userID.String(), f.showtime.ID.String(), f.lockRequest(f.seats[0]))
	require.NoError(t, err)
	require.NotNil(t, resp)

	lock := f.state.locks[f.seats[0].ID]
	assert.Equal(t, f.userID, lock.UserID, "stale lock should be replaced by the new holder")
}

func TestLockSeats_SeatAlreadyReserved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resID := uuid.New()
	f.state.reservations[resID] = &entity.Reservation{
		Base:       entity.Base{ID: resID},
		UserID:     uuid.New(),
		ShowtimeID: f.showtime.ID,
		Status:     entity.ReservationStatusConfirmed,
	}
	f.state.reserved[f.seats[0].ID] = resID

	_, err := f.svc.LockSeats(ctx, f.userID.String(), f.showtime.ID.String(), f.lockRequest(f.seats[0]))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrSeatUnavailable)
}

func TestLockSeats_ShowtimeStarted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.showtime.StartTime = time.Now().Add(-1 * time.Minute)

	_, err := f.svc.LockSeats(ctx, f.userID.String(), f.showtime.ID.String(), f.lockRequest(f.seats[0]))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrShowtimeStarted)
}

func TestLockSeats_UnknownSeat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ghost := uuid.New()
	req := &request.LockSeatsRequest{SeatIDs: []string{ghost.String()}}

	_, err := f.svc.LockSeats(ctx, f.userID.String(), f.showtime.ID.String(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	var conflict *repository.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []uuid.UUID{ghost}, conflict.SeatIDs)
}

func TestLockSeats_UnknownShowtime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.LockSeats(ctx, f.userID.String(), uuid.New().String(), f.lockRequest(f.seats[0]))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// Eight users race for the same seat; exactly one may win.
func TestLockSeats_ConcurrentAcquire_SingleWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const contenders = 8

	var wg sync.WaitGroup
	results := make([]error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := uuid.New().String()
			_, err := f.svc.LockSeats(ctx, userID, f.showtime.ID.String(), f.lockRequest(f.seats[0]))
			results[i] = err
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, repository.ErrSeatUnavailable)
		}
	}
	assert.Equal(t, 1, winners, "exactly one acquirer may hold the seat")

	_, locked := f.state.locks[f.seats[0].ID]
	assert.True(t, locked)
}

func TestReleaseSeats_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.plantLock(f.seats[0], f.userID, time.Now().Add(5*time.Minute))

	req := &request.ReleaseSeatsRequest{SeatIDs: []string{f.seats[0].ID.String()}}

	resp, err := f.svc.ReleaseSeats(ctx, f.userID.String(), f.showtime.ID.String(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ReleasedSeats)

	// Second release finds nothing and still succeeds.
	resp, err = f.svc.ReleaseSeats(ctx, f.userID.String(), f.showtime.ID.String(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ReleasedSeats)
}

func TestReleaseSeats_DoesNotTouchOtherUsersLocks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	otherUser := uuid.New()
	f.plantLock(f.seats[0], otherUser, time.Now().Add(5*time.Minute))

	req := &request.ReleaseSeatsRequest{SeatIDs: []string{f.seats[0].ID.String()}}
	resp, err := f.svc.ReleaseSeats(ctx, f.userID.String(), f.showtime.ID.String(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ReleasedSeats)

	_, stillLocked := f.state.locks[f.seats[0].ID]
	assert.True(t, stillLocked)
}

func reservationRequest(f *fixture, seats ...*entity.Seat) *request.CreateReservationRequest {
	req := &request.CreateReservationRequest{ShowtimeID: f.showtime.ID.String()}
	for _, seat := range seats {
		req.SeatIDs = append(req.SeatIDs, seat.ID.String())
	}
	return req
}

func TestCreateReservation_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	expiresAt := time.Now().Add(5 * time.Minute)
	f.plantLock(f.seats[0], f.userID, expiresAt)
	f.plantLock(f.seats[1], f.userID, expiresAt)

	resp, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0], f.seats[1]))
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, entity.ReservationStatusConfirmed, resp.Status)
	assert.Len(t, resp.SeatIDs, 2)

	// Locks are consumed by the commit.
	_, stillLocked := f.state.locks[f.seats[0].ID]
	assert.False(t, stillLocked, "committed locks must be consumed")

	// Seats now count as reserved.
	resID := uuid.MustParse(resp.ID)
	assert.Equal(t, resID, f.state.reserved[f.seats[0].ID])
	assert.Equal(t, resID, f.state.reserved[f.seats[1].ID])
}

func TestCreateReservation_PriceUsesSeatTypeMultipliers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	expiresAt := time.Now().Add(5 * time.Minute)
	for _, seat := range f.seats {
		f.plantLock(seat, f.userID, expiresAt)
	}

	resp, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats...))
	require.NoError(t, err)

	// base 100: regular 100 + premium 125 + vip 150
	assert.InDelta(t, 375.0, resp.TotalPrice, 0.001)
}

func TestCreateReservation_LockMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0]))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrLockMissing)

	var conflict *repository.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []uuid.UUID{f.seats[0].ID}, conflict.SeatIDs)
}

func TestCreateReservation_LockExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.plantLock(f.seats[0], f.userID, time.Now().Add(-1*time.Second))

	_, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0]))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrLockExpired)

	// No reservation may exist after a failed commit.
	assert.Empty(t, f.state.reservations)
}

func TestCreateReservation_LockHeldByOtherUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.plantLock(f.seats[0], uuid.New(), time.Now().Add(5*time.Minute))

	_, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0]))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrLockNotOwned)
}

func TestCreateReservation_PartialLocksFailWholeRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Only one of two requested seats is held.
	f.plantLock(f.seats[0], f.userID, time.Now().Add(5*time.Minute))

	_, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0], f.seats[1]))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrLockMissing)

	// The held lock survives the failed commit.
	_, stillLocked := f.state.locks[f.seats[0].ID]
	assert.True(t, stillLocked, "failed commit must leave existing locks in place")
	assert.Empty(t, f.state.reservations)
}

func TestCreateReservation_StoreFaultLeavesNothingBehind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	expiresAt := time.Now().Add(5 * time.Minute)
	f.plantLock(f.seats[0], f.userID, expiresAt)
	f.plantLock(f.seats[1], f.userID, expiresAt)

	// Fail the seat-link insert after the reservation insert succeeded.
	resRepo := f.repo.Reservation.(*fakeReservationRepo)
	resRepo.seatsErr = errors.New("connection reset by peer")

	_, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0], f.seats[1]))
	require.Error(t, err)

	assert.Empty(t, f.state.reservations, "no reservation row may survive a failed commit")
	assert.Empty(t, f.state.reserved, "no reservation seat may survive a failed commit")
	_, stillLocked := f.state.locks[f.seats[0].ID]
	assert.True(t, stillLocked, "locks must stay in place when commit fails")

	// Retry succeeds once the store recovers.
	resRepo.seatsErr = nil
	resp, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0], f.seats[1]))
	require.NoError(t, err)
	assert.Len(t, resp.SeatIDs, 2)
}

func TestCreateReservation_RunsWhileSeatRowsAreLocked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.plantLock(f.seats[0], f.userID, time.Now().Add(5*time.Minute))

	// An in-flight acquire holds the seat row locks for the whole theater.
	// Commit relies on lock ownership only, so it must not queue behind them.
	f.state.mu.Lock()
	defer f.state.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0]))
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("commit blocked on seat row locks held by an acquirer")
	}
}

func TestCreateReservation_ExpiredLockOfOtherUserCountsAsMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Dead row from a previous holder; the caller never held this seat.
	f.plantLock(f.seats[0], uuid.New(), time.Now().Add(-1*time.Minute))

	_, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0]))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrLockMissing)
}

func TestCreateReservation_MissingOutranksNotOwned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.plantLock(f.seats[0], uuid.New(), time.Now().Add(5*time.Minute))
	// seats[1] has no lock at all.

	_, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0], f.seats[1]))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrLockMissing)

	var conflict *repository.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []uuid.UUID{f.seats[1].ID}, conflict.SeatIDs)
}

func TestLockSeats_RejectsDuplicateSeatIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Same UUID in different hex case defeats the string-level unique tag.
	id := f.seats[0].ID.String()
	req := &request.LockSeatsRequest{SeatIDs: []string{strings.ToLower(id), strings.ToUpper(id)}}

	_, err := f.svc.LockSeats(ctx, f.userID.String(), f.showtime.ID.String(), req)
	require.Error(t, err)

	// A duplicated ID is a bad request; it must never self-collide on the
	// unique constraint and surface as a seat conflict.
	assert.False(t, errors.Is(err, repository.ErrSeatUnavailable))

	_, locked := f.state.locks[f.seats[0].ID]
	assert.False(t, locked, "no lock may be taken from a rejected request")
}

func TestCreateReservation_ShowtimeStarted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.plantLock(f.seats[0], f.userID, time.Now().Add(5*time.Minute))
	f.showtime.StartTime = time.Now().Add(-1 * time.Minute)

	_, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0]))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrShowtimeStarted)
}

func TestCancelReservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.plantLock(f.seats[0], f.userID, time.Now().Add(5*time.Minute))
	resp, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0]))
	require.NoError(t, err)

	t.Run("stranger cannot cancel", func(t *testing.T) {
		err := f.svc.CancelReservation(ctx, uuid.New().String(), false, resp.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrNotOwned)
	})

	t.Run("owner cancels and seat frees up", func(t *testing.T) {
		require.NoError(t, f.svc.CancelReservation(ctx, f.userID.String(), false, resp.ID))

		res := f.state.reservations[uuid.MustParse(resp.ID)]
		assert.Equal(t, entity.ReservationStatusCancelled, res.Status)

		// The freed seat can be locked again by someone else.
		otherUser := uuid.New()
		_, err := f.svc.LockSeats(ctx, otherUser.String(), f.showtime.ID.String(), f.lockRequest(f.seats[0]))
		assert.NoError(t, err)
	})

	t.Run("cancel twice is a no-op", func(t *testing.T) {
		assert.NoError(t, f.svc.CancelReservation(ctx, f.userID.String(), false, resp.ID))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		err := f.svc.CancelReservation(ctx, f.userID.String(), false, uuid.New().String())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestCancelReservation_AdminCanCancelAny(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.plantLock(f.seats[0], f.userID, time.Now().Add(5*time.Minute))
	resp, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0]))
	require.NoError(t, err)

	admin := uuid.New()
	require.NoError(t, f.svc.CancelReservation(ctx, admin.String(), true, resp.ID))

	res := f.state.reservations[uuid.MustParse(resp.ID)]
	assert.Equal(t, entity.ReservationStatusCancelled, res.Status)
}

func TestCancelReservation_AfterShowtimeStarted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.plantLock(f.seats[0], f.userID, time.Now().Add(5*time.Minute))
	resp, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0]))
	require.NoError(t, err)

	f.showtime.StartTime = time.Now().Add(-1 * time.Minute)

	err = f.svc.CancelReservation(ctx, f.userID.String(), false, resp.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrShowtimeStarted)
}

func TestGetSeatAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Seat 0 locked by someone, seat 1 reserved, seat 2 free. An expired
	// lock on seat 2 must not count.
	f.plantLock(f.seats[0], uuid.New(), time.Now().Add(5*time.Minute))
	f.plantLock(f.seats[2], uuid.New(), time.Now().Add(-1*time.Minute))

	resID := uuid.New()
	f.state.reservations[resID] = &entity.Reservation{
		Base:       entity.Base{ID: resID},
		UserID:     uuid.New(),
		ShowtimeID: f.showtime.ID,
		Status:     entity.ReservationStatusConfirmed,
	}
	f.state.reserved[f.seats[1].ID] = resID

	resp, err := f.svc.GetSeatAvailability(ctx, f.showtime.ID.String())
	require.NoError(t, err)

	require.Equal(t, 3, resp.TotalSeats)
	assert.Equal(t, 1, resp.AvailableSeats)

	byLabel := make(map[string]bool, len(resp.Seats))
	for _, seat := range resp.Seats {
		byLabel[seat.Label] = seat.IsAvailable
	}
	assert.False(t, byLabel["A1"])
	assert.False(t, byLabel["A2"])
	assert.True(t, byLabel["A3"])
}

func TestGetReservationByID_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.plantLock(f.seats[0], f.userID, time.Now().Add(5*time.Minute))
	created, err := f.svc.CreateReservation(ctx, f.userID.String(), reservationRequest(f, f.seats[0]))
	require.NoError(t, err)

	// Owner sees it.
	got, err := f.svc.GetReservationByID(ctx, f.userID.String(), false, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// A stranger does not.
	_, err = f.svc.GetReservationByID(ctx, uuid.New().String(), false, created.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotOwned)

	// An admin does.
	got, err = f.svc.GetReservationByID(ctx, uuid.New().String(), true, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestLockSeats_ValidationRejectsEmptyRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.LockSeats(ctx, f.userID.String(), f.showtime.ID.String(), &request.LockSeatsRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.False(t, errors.Is(err, repository.ErrSeatUnavailable))
}
