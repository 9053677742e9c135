package repository

import (
	"context"
	"fmt"

	"movie-reservation/internal/data/entity"
	"movie-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error)
	FindByTheaterID(ctx context.Context, theaterID uuid.UUID) ([]*entity.Seat, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error)

	// Lock protocol queries
	LockForBookingTx(ctx context.Context, tx pgx.Tx, theaterID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.Seat, error)
	FindAvailability(ctx context.Context, theaterID, showtimeID uuid.UUID) ([]*entity.SeatAvailability, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	// Build batch insert
	query := `INSERT INTO seats (id, theater_id, row_label, seat_number, seat_type, created_at) VALUES `
	args := []interface{}{}

	for i, seat := range seats {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			i*6+1, i*6+2, i*6+3, i*6+4, i*6+5, i*6+6)

		args = append(args,
			seat.ID,
			seat.TheaterID,
			seat.RowLabel,
			seat.SeatNumber,
			seat.SeatType,
			seat.CreatedAt,
		)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create batch seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create batch seats: %w", err)
	}

	return nil
}

func (r *seatRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	query := `
		SELECT id, theater_id, row_label, seat_number, seat_type, created_at
		FROM seats
		WHERE id = $1
	`

	var seat entity.Seat
	err := r.db.QueryRow(ctx, query, id).Scan(
		&seat.ID,
		&seat.TheaterID,
		&seat.RowLabel,
		&seat.SeatNumber,
		&seat.SeatType,
		&seat.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat by ID",
			zap.Error(err),
			zap.String("seat_id", id.String()),
		)
		return nil, fmt.Errorf("find seat by ID %s: %w", id.String(), err)
	}

	return &seat, nil
}

func (r *seatRepository) FindByTheaterID(ctx context.Context, theaterID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, theater_id, row_label, seat_number, seat_type, created_at
		FROM seats
		WHERE theater_id = $1
		ORDER BY row_label, seat_number
	`

	rows, err := r.db.Query(ctx, query, theaterID)
	if err != nil {
		r.log.Error("Failed to find seats by theater ID",
			zap.Error(err),
			zap.String("theater_id", theaterID.String()),
		)
		return nil, fmt.Errorf("find seats by theater ID %s: %w", theaterID.String(), err)
	}
	defer rows.Close()

	return scanSeats(rows)
}

func (r *seatRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	if len(ids) == 0 {
		return []*entity.Seat{}, nil
	}

	query := `
		SELECT id, theater_id, row_label, seat_number, seat_type, created_at
		FROM seats
		WHERE id = ANY($1)
		ORDER BY row_label, seat_number
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find seats by IDs",
			zap.Error(err),
			zap.Int("seat_count", len(ids)),
		)
		return nil, fmt.Errorf("find seats by IDs: %w", err)
	}
	defer rows.Close()

	return scanSeats(rows)
}

// LockForBookingTx takes row-level exclusive locks on the requested seats,
// serializing concurrent acquirers for the same seats. The locks live for
// the duration of tx only. Seats outside the theater are simply absent from
// the result; the caller compares counts.
func (r *seatRepository) LockForBookingTx(ctx context.Context, tx pgx.Tx, theaterID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.Seat, error) {
	if len(seatIDs) == 0 {
		return []*entity.Seat{}, nil
	}

	query := `
		SELECT id, theater_id, row_label, seat_number, seat_type, created_at
		FROM seats
		WHERE theater_id = $1 AND id = ANY($2)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, query, theaterID, seatIDs)
	if err != nil {
		r.log.Error("Failed to lock seat rows",
			zap.Error(err),
			zap.String("theater_id", theaterID.String()),
			zap.Int("seat_count", len(seatIDs)),
		)
		return nil, fmt.Errorf("lock seat rows: %w", err)
	}
	defer rows.Close()

	return scanSeats(rows)
}

// FindAvailability computes the seat map for one showtime in a single
// statement, so the view is one consistent snapshot. It is advisory only;
// the authoritative check happens under row locks at acquire time.
func (r *seatRepository) FindAvailability(ctx context.Context, theaterID, showtimeID uuid.UUID) ([]*entity.SeatAvailability, error) {
	query := `
		SELECT s.id, s.theater_id, s.row_label, s.seat_number, s.seat_type, s.created_at,
		       EXISTS (
		           SELECT 1 FROM reservation_seats rs
		           JOIN reservations res ON res.id = rs.reservation_id
		           WHERE rs.seat_id = s.id
		             AND res.showtime_id = $2
		             AND res.status = 'confirmed'
		       ) AS is_reserved,
		       EXISTS (
		           SELECT 1 FROM seat_locks sl
		           WHERE sl.seat_id = s.id
		             AND sl.showtime_id = $2
		             AND sl.expires_at > NOW()
		       ) AS is_locked
		FROM seats s
		WHERE s.theater_id = $1
		ORDER BY s.row_label, s.seat_number
	`

	rows, err := r.db.Query(ctx, query, theaterID, showtimeID)
	if err != nil {
		r.log.Error("Failed to query seat availability",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("query seat availability for showtime %s: %w", showtimeID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.SeatAvailability
	for rows.Next() {
		var sa entity.SeatAvailability
		err := rows.Scan(
			&sa.ID,
			&sa.TheaterID,
			&sa.RowLabel,
			&sa.SeatNumber,
			&sa.SeatType,
			&sa.CreatedAt,
			&sa.IsReserved,
			&sa.IsLocked,
		)
		if err != nil {
			r.log.Error("Failed to scan seat availability row", zap.Error(err))
			return nil, fmt.Errorf("scan seat availability row: %w", err)
		}
		seats = append(seats, &sa)
	}

	return seats, nil
}

func scanSeats(rows pgx.Rows) ([]*entity.Seat, error) {
	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.TheaterID,
			&seat.RowLabel,
			&seat.SeatNumber,
			&seat.SeatType,
			&seat.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}
	return seats, nil
}
