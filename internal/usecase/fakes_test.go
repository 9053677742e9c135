package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// lockState is the in-memory stand-in for the seat_locks, reservations, and
// reservation_seats tables. The mutex plays the role of the seat row locks:
// a transaction takes it in LockForBookingTx and releases it at Commit or
// Rollback, so concurrent acquirers serialize exactly like they do against
// Postgres.
type lockState struct {
	mu               sync.Mutex
	locks            map[uuid.UUID]entity.SeatLock // committed rows, by seat ID
	reserved         map[uuid.UUID]uuid.UUID       // seat -> confirmed reservation
	reservations     map[uuid.UUID]*entity.Reservation
	reservationSeats map[uuid.UUID][]uuid.UUID
}

func newLockState() *lockState {
	return &lockState{
		locks:            make(map[uuid.UUID]entity.SeatLock),
		reserved:         make(map[uuid.UUID]uuid.UUID),
		reservations:     make(map[uuid.UUID]*entity.Reservation),
		reservationSeats: make(map[uuid.UUID][]uuid.UUID),
	}
}

// fakeTx buffers writes until Commit, mirroring transaction visibility. The
// fake repositories type-assert their pgx.Tx back to *fakeTx.
type fakeTx struct {
	state *lockState

	holding bool // seat row locks taken
	done    bool

	deleteLocks       []uuid.UUID
	insertLocks       []*entity.SeatLock
	insertReservation *entity.Reservation
	insertResSeats    []*entity.ReservationSeat
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true

	for _, seatID := range t.deleteLocks {
		delete(t.state.locks, seatID)
	}
	for _, lock := range t.insertLocks {
		t.state.locks[lock.SeatID] = *lock
	}
	if t.insertReservation != nil {
		res := *t.insertReservation
		t.state.reservations[res.ID] = &res
	}
	for _, rs := range t.insertResSeats {
		t.state.reserved[rs.SeatID] = rs.ReservationID
		t.state.reservationSeats[rs.ReservationID] = append(t.state.reservationSeats[rs.ReservationID], rs.SeatID)
	}

	if t.holding {
		t.holding = false
		t.state.mu.Unlock()
	}
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true

	if t.holding {
		t.holding = false
		t.state.mu.Unlock()
	}
	return nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, pgx.ErrTxClosed }
func (t *fakeTx) Conn() *pgx.Conn                           { return nil }
func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, pgx.ErrTxClosed
}
func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, pgx.ErrTxClosed
}
func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, pgx.ErrTxClosed
}
func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

// fakePgx hands out fake transactions; the services only use Begin.
type fakePgx struct {
	state *lockState
}

var _ database.PgxIface = (*fakePgx)(nil)

func (p *fakePgx) Begin(ctx context.Context) (pgx.Tx, error) {
	return &fakeTx{state: p.state}, nil
}

func (p *fakePgx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}
func (p *fakePgx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (p *fakePgx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (p *fakePgx) Ping(ctx context.Context) error { return nil }
func (p *fakePgx) Close()                         {}

// fakeSeatRepo serves a fixed seat layout for one theater.
type fakeSeatRepo struct {
	state     *lockState
	theaterID uuid.UUID
	seats     map[uuid.UUID]*entity.Seat
	order     []uuid.UUID
}

var _ repository.SeatRepository = (*fakeSeatRepo)(nil)

func (r *fakeSeatRepo) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	for _, seat := range seats {
		r.seats[seat.ID] = seat
		r.order = append(r.order, seat.ID)
	}
	return nil
}

func (r *fakeSeatRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	return r.seats[id], nil
}

func (r *fakeSeatRepo) FindByTheaterID(ctx context.Context, theaterID uuid.UUID) ([]*entity.Seat, error) {
	var out []*entity.Seat
	for _, id := range r.order {
		if r.seats[id].TheaterID == theaterID {
			out = append(out, r.seats[id])
		}
	}
	return out, nil
}

func (r *fakeSeatRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	var out []*entity.Seat
	for _, id := range ids {
		if seat, ok := r.seats[id]; ok {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (r *fakeSeatRepo) LockForBookingTx(ctx context.Context, tx pgx.Tx, theaterID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.Seat, error) {
	ft := tx.(*fakeTx)
	ft.state.mu.Lock()
	ft.holding = true

	var out []*entity.Seat
	for _, id := range seatIDs {
		seat, ok := r.seats[id]
		if !ok || seat.TheaterID != theaterID {
			continue
		}
		out = append(out, seat)
	}
	return out, nil
}

func (r *fakeSeatRepo) FindAvailability(ctx context.Context, theaterID, showtimeID uuid.UUID) ([]*entity.SeatAvailability, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	now := time.Now()
	var out []*entity.SeatAvailability
	for _, id := range r.order {
		seat := r.seats[id]
		if seat.TheaterID != theaterID {
			continue
		}
		sa := &entity.SeatAvailability{Seat: *seat}
		if lock, ok := r.state.locks[id]; ok && lock.ShowtimeID == showtimeID && !lock.IsExpired(now) {
			sa.IsLocked = true
		}
		if resID, ok := r.state.reserved[id]; ok {
			if res := r.state.reservations[resID]; res != nil && res.ShowtimeID == showtimeID && res.Status == entity.ReservationStatusConfirmed {
				sa.IsReserved = true
			}
		}
		out = append(out, sa)
	}
	return out, nil
}

// fakeSeatLockRepo applies the lock protocol against lockState. The Tx
// methods assume the caller already holds the row locks via
// LockForBookingTx, exactly like the SQL implementation does.
type fakeSeatLockRepo struct {
	state *lockState
}

var _ repository.SeatLockRepository = (*fakeSeatLockRepo)(nil)

func (r *fakeSeatLockRepo) FindActiveByOthersTx(ctx context.Context, tx pgx.Tx, showtimeID uuid.UUID, seatIDs []uuid.UUID, excludeUserID uuid.UUID) ([]uuid.UUID, error) {
	now := time.Now()
	var out []uuid.UUID
	for _, seatID := range seatIDs {
		lock, ok := r.state.locks[seatID]
		if ok && lock.ShowtimeID == showtimeID && lock.UserID != excludeUserID && !lock.IsExpired(now) {
			out = append(out, seatID)
		}
	}
	return out, nil
}

func (r *fakeSeatLockRepo) DeleteReplaceableTx(ctx context.Context, tx pgx.Tx, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) error {
	ft := tx.(*fakeTx)
	now := time.Now()
	for _, seatID := range seatIDs {
		lock, ok := r.state.locks[seatID]
		if ok && lock.ShowtimeID == showtimeID && (lock.UserID == userID || lock.IsExpired(now)) {
			ft.deleteLocks = append(ft.deleteLocks, seatID)
		}
	}
	return nil
}

func (r *fakeSeatLockRepo) DeleteByHolderTx(ctx context.Context, tx pgx.Tx, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) error {
	ft := tx.(*fakeTx)
	for _, seatID := range seatIDs {
		lock, ok := r.state.locks[seatID]
		if ok && lock.ShowtimeID == showtimeID && lock.UserID == userID {
			ft.deleteLocks = append(ft.deleteLocks, seatID)
		}
	}
	return nil
}

func (r *fakeSeatLockRepo) CreateBatchTx(ctx context.Context, tx pgx.Tx, locks []*entity.SeatLock) error {
	ft := tx.(*fakeTx)

	pendingDelete := make(map[uuid.UUID]bool, len(ft.deleteLocks))
	for _, seatID := range ft.deleteLocks {
		pendingDelete[seatID] = true
	}

	for _, lock := range locks {
		if _, exists := r.state.locks[lock.SeatID]; exists && !pendingDelete[lock.SeatID] {
			return fmt.Errorf("create %d seat locks: %w", len(locks),
				&pgconn.PgError{Code: "23505", ConstraintName: "seat_locks_seat_id_showtime_id_key"})
		}
	}

	ft.insertLocks = append(ft.insertLocks, locks...)
	return nil
}

func (r *fakeSeatLockRepo) FindForSeatsTx(ctx context.Context, tx pgx.Tx, showtimeID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.SeatLock, error) {
	var out []*entity.SeatLock
	for _, seatID := range seatIDs {
		if lock, ok := r.state.locks[seatID]; ok && lock.ShowtimeID == showtimeID {
			copied := lock
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeSeatLockRepo) DeleteByHolder(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	var count int64
	for _, seatID := range seatIDs {
		lock, ok := r.state.locks[seatID]
		if ok && lock.ShowtimeID == showtimeID && lock.UserID == userID {
			delete(r.state.locks, seatID)
			count++
		}
	}
	return count, nil
}

func (r *fakeSeatLockRepo) DeleteExpired(ctx context.Context, batchSize int) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	now := time.Now()
	var count int64
	for seatID, lock := range r.state.locks {
		if count >= int64(batchSize) {
			break
		}
		if lock.IsExpired(now) {
			delete(r.state.locks, seatID)
			count++
		}
	}
	return count, nil
}

// fakeReservationRepo stores reservations in lockState.
type fakeReservationRepo struct {
	state *lockState

	seatsErr error // injected CreateSeatsTx fault
}

var _ repository.ReservationRepository = (*fakeReservationRepo)(nil)

func (r *fakeReservationRepo) CreateTx(ctx context.Context, tx pgx.Tx, reservation *entity.Reservation) error {
	tx.(*fakeTx).insertReservation = reservation
	return nil
}

func (r *fakeReservationRepo) CreateSeatsTx(ctx context.Context, tx pgx.Tx, seats []*entity.ReservationSeat) error {
	if r.seatsErr != nil {
		return r.seatsErr
	}
	ft := tx.(*fakeTx)
	ft.insertResSeats = append(ft.insertResSeats, seats...)
	return nil
}

func (r *fakeReservationRepo) FindConfirmedSeatIDsTx(ctx context.Context, tx pgx.Tx, showtimeID uuid.UUID, seatIDs []uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, seatID := range seatIDs {
		if resID, ok := r.state.reserved[seatID]; ok {
			if res := r.state.reservations[resID]; res != nil && res.ShowtimeID == showtimeID && res.Status == entity.ReservationStatusConfirmed {
				out = append(out, seatID)
			}
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	res, ok := r.state.reservations[id]
	if !ok {
		return nil, nil
	}
	copied := *res
	return &copied, nil
}

func (r *fakeReservationRepo) FindSeatIDs(ctx context.Context, reservationID uuid.UUID) ([]uuid.UUID, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return append([]uuid.UUID(nil), r.state.reservationSeats[reservationID]...), nil
}

func (r *fakeReservationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, includePast bool, limit, offset int) ([]*entity.Reservation, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []*entity.Reservation
	for _, res := range r.state.reservations {
		if res.UserID == userID {
			copied := *res
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) CountByUserID(ctx context.Context, userID uuid.UUID, includePast bool) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var count int64
	for _, res := range r.state.reservations {
		if res.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeReservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	res, ok := r.state.reservations[id]
	if !ok {
		return fmt.Errorf("update reservation %s status: %w", id.String(), repository.ErrNotFound)
	}
	res.Status = status
	if status == entity.ReservationStatusCancelled {
		for _, seatID := range r.state.reservationSeats[id] {
			delete(r.state.reserved, seatID)
		}
	}
	return nil
}

// fakeShowtimeRepo serves fixed showtimes; overlapping counts are scripted
// per test.
type fakeShowtimeRepo struct {
	showtimes   map[uuid.UUID]*entity.Showtime
	overlapping int64
}

var _ repository.ShowtimeRepository = (*fakeShowtimeRepo)(nil)

func (r *fakeShowtimeRepo) Create(ctx context.Context, showtime *entity.Showtime) error {
	r.showtimes[showtime.ID] = showtime
	return nil
}

func (r *fakeShowtimeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	return r.showtimes[id], nil
}

func (r *fakeShowtimeRepo) FindAll(ctx context.Context, movieID *uuid.UUID, date *time.Time, limit, offset int) ([]*entity.Showtime, error) {
	var out []*entity.Showtime
	for _, st := range r.showtimes {
		out = append(out, st)
	}
	return out, nil
}

func (r *fakeShowtimeRepo) Count(ctx context.Context, movieID *uuid.UUID, date *time.Time) (int64, error) {
	return int64(len(r.showtimes)), nil
}

func (r *fakeShowtimeRepo) CountOverlapping(ctx context.Context, theaterID uuid.UUID, startTime, endTime time.Time, excludeID uuid.UUID) (int64, error) {
	return r.overlapping, nil
}

func (r *fakeShowtimeRepo) Update(ctx context.Context, showtime *entity.Showtime) error {
	r.showtimes[showtime.ID] = showtime
	return nil
}

func (r *fakeShowtimeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.showtimes, id)
	return nil
}
