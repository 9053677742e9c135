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

// ReservationRepository is the sole mutator of reservations and
// reservation_seats.
type ReservationRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, reservation *entity.Reservation) error
	CreateSeatsTx(ctx context.Context, tx pgx.Tx, seats []*entity.ReservationSeat) error
	FindConfirmedSeatIDsTx(ctx context.Context, tx pgx.Tx, showtimeID uuid.UUID, seatIDs []uuid.UUID) ([]uuid.UUID, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindSeatIDs(ctx context.Context, reservationID uuid.UUID) ([]uuid.UUID, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, includePast bool, limit, offset int) ([]*entity.Reservation, error)
	CountByUserID(ctx context.Context, userID uuid.UUID, includePast bool) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) CreateTx(ctx context.Context, tx pgx.Tx, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, user_id, showtime_id, status, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tx.Exec(ctx, query,
		reservation.ID,
		reservation.UserID,
		reservation.ShowtimeID,
		reservation.Status,
		reservation.TotalPrice,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("user_id", reservation.UserID.String()),
			zap.String("showtime_id", reservation.ShowtimeID.String()),
		)
		return fmt.Errorf("create reservation for user %s: %w", reservation.UserID.String(), err)
	}

	return nil
}

func (r *reservationRepository) CreateSeatsTx(ctx context.Context, tx pgx.Tx, seats []*entity.ReservationSeat) error {
	if len(seats) == 0 {
		return nil
	}

	// Build batch insert
	query := `INSERT INTO reservation_seats (reservation_id, seat_id) VALUES `
	args := []interface{}{}

	for i, rs := range seats {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2)
		args = append(args, rs.ReservationID, rs.SeatID)
	}

	_, err := tx.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create reservation seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create %d reservation seats: %w", len(seats), err)
	}

	return nil
}

// FindConfirmedSeatIDsTx returns which of seatIDs already sit under a
// confirmed reservation for this showtime. Run under the seat row locks
// during acquire.
func (r *reservationRepository) FindConfirmedSeatIDsTx(ctx context.Context, tx pgx.Tx, showtimeID uuid.UUID, seatIDs []uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT rs.seat_id
		FROM reservation_seats rs
		INNER JOIN reservations res ON res.id = rs.reservation_id
		WHERE res.showtime_id = $1 AND res.status = 'confirmed' AND rs.seat_id = ANY($2)
	`

	rows, err := tx.Query(ctx, query, showtimeID, seatIDs)
	if err != nil {
		r.log.Error("Failed to find confirmed seat IDs",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("find confirmed seats for showtime %s: %w", showtimeID.String(), err)
	}
	defer rows.Close()

	return scanSeatIDs(rows)
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT id, user_id, showtime_id, status, total_price, created_at, updated_at
		FROM reservations
		WHERE id = $1
	`

	var reservation entity.Reservation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.ShowtimeID,
		&reservation.Status,
		&reservation.TotalPrice,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return &reservation, nil
}

func (r *reservationRepository) FindSeatIDs(ctx context.Context, reservationID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT seat_id
		FROM reservation_seats
		WHERE reservation_id = $1
	`

	rows, err := r.db.Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find reservation seat IDs",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find seats of reservation %s: %w", reservationID.String(), err)
	}
	defer rows.Close()

	return scanSeatIDs(rows)
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, includePast bool, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT r.id, r.user_id, r.showtime_id, r.status, r.total_price, r.created_at, r.updated_at
		FROM reservations r
		INNER JOIN showtimes st ON st.id = r.showtime_id
		WHERE r.user_id = $1 AND ($2 OR st.start_time >= NOW())
		ORDER BY r.created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, userID, includePast, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reservations by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		var reservation entity.Reservation
		err := rows.Scan(
			&reservation.ID,
			&reservation.UserID,
			&reservation.ShowtimeID,
			&reservation.Status,
			&reservation.TotalPrice,
			&reservation.CreatedAt,
			&reservation.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, &reservation)
	}

	return reservations, nil
}

func (r *reservationRepository) CountByUserID(ctx context.Context, userID uuid.UUID, includePast bool) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations r
		INNER JOIN showtimes st ON st.id = r.showtime_id
		WHERE r.user_id = $1 AND ($2 OR st.start_time >= NOW())
	`

	var count int64
	err := r.db.QueryRow(ctx, query, userID, includePast).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reservations by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	query := `UPDATE reservations SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update reservation %s status: %w", id.String(), ErrNotFound)
	}

	return nil
}
