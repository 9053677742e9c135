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

// SeatLockRepository is the sole mutator of the seat_locks table. The table
// carries a unique constraint on (seat_id, showtime_id), which backstops the
// row-lock protocol: even if two acquirers slip past the in-transaction
// check, only one insert can commit.
type SeatLockRepository interface {
	// Transactional protocol steps
	FindActiveByOthersTx(ctx context.Context, tx pgx.Tx, showtimeID uuid.UUID, seatIDs []uuid.UUID, excludeUserID uuid.UUID) ([]uuid.UUID, error)
	DeleteReplaceableTx(ctx context.Context, tx pgx.Tx, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) error
	DeleteByHolderTx(ctx context.Context, tx pgx.Tx, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) error
	CreateBatchTx(ctx context.Context, tx pgx.Tx, locks []*entity.SeatLock) error
	FindForSeatsTx(ctx context.Context, tx pgx.Tx, showtimeID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.SeatLock, error)

	// Standalone operations
	DeleteByHolder(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) (int64, error)
	DeleteExpired(ctx context.Context, batchSize int) (int64, error)
}

type seatLockRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatLockRepository(db database.PgxIface, log *zap.Logger) SeatLockRepository {
	return &seatLockRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat_lock")),
	}
}

// FindActiveByOthersTx returns the seat IDs among seatIDs that carry a
// non-expired lock held by a user other than excludeUserID. Must run under
// the seat row locks taken by LockForBookingTx.
func (r *seatLockRepository) FindActiveByOthersTx(ctx context.Context, tx pgx.Tx, showtimeID uuid.UUID, seatIDs []uuid.UUID, excludeUserID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT seat_id
		FROM seat_locks
		WHERE showtime_id = $1 AND seat_id = ANY($2)
		  AND expires_at > NOW()
		  AND user_id <> $3
	`

	rows, err := tx.Query(ctx, query, showtimeID, seatIDs, excludeUserID)
	if err != nil {
		r.log.Error("Failed to find active locks by others",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("find active locks for showtime %s: %w", showtimeID.String(), err)
	}
	defer rows.Close()

	return scanSeatIDs(rows)
}

// DeleteReplaceableTx clears the rows that must not block a fresh insert on
// these seats: the caller's own locks (renewal takes a full new TTL) and
// expired locks left by anyone the sweeper has not reached yet. The unique
// constraint ignores expiry, so expired rows have to go before the insert.
func (r *seatLockRepository) DeleteReplaceableTx(ctx context.Context, tx pgx.Tx, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) error {
	query := `
		DELETE FROM seat_locks
		WHERE showtime_id = $2 AND seat_id = ANY($3)
		  AND (user_id = $1 OR expires_at <= NOW())
	`

	_, err := tx.Exec(ctx, query, userID, showtimeID, seatIDs)
	if err != nil {
		r.log.Error("Failed to delete replaceable locks",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("showtime_id", showtimeID.String()),
		)
		return fmt.Errorf("delete replaceable locks for showtime %s: %w", showtimeID.String(), err)
	}

	return nil
}

// DeleteByHolderTx removes the caller's own locks on the given seats. Used
// for lock consumption at commit.
func (r *seatLockRepository) DeleteByHolderTx(ctx context.Context, tx pgx.Tx, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) error {
	query := `
		DELETE FROM seat_locks
		WHERE user_id = $1 AND showtime_id = $2 AND seat_id = ANY($3)
	`

	_, err := tx.Exec(ctx, query, userID, showtimeID, seatIDs)
	if err != nil {
		r.log.Error("Failed to delete holder locks",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("showtime_id", showtimeID.String()),
		)
		return fmt.Errorf("delete locks held by %s: %w", userID.String(), err)
	}

	return nil
}

func (r *seatLockRepository) CreateBatchTx(ctx context.Context, tx pgx.Tx, locks []*entity.SeatLock) error {
	if len(locks) == 0 {
		return nil
	}

	// Build batch insert
	query := `INSERT INTO seat_locks (id, seat_id, showtime_id, user_id, expires_at, created_at) VALUES `
	args := []interface{}{}

	for i, lock := range locks {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			i*6+1, i*6+2, i*6+3, i*6+4, i*6+5, i*6+6)

		args = append(args,
			lock.ID,
			lock.SeatID,
			lock.ShowtimeID,
			lock.UserID,
			lock.ExpiresAt,
			lock.CreatedAt,
		)
	}

	_, err := tx.Exec(ctx, query, args...)
	if err != nil {
		// Unique violation here means a concurrent acquirer won the race;
		// the caller maps it to a seat conflict.
		if !IsUniqueViolation(err) {
			r.log.Error("Failed to create seat locks",
				zap.Error(err),
				zap.Int("count", len(locks)),
			)
		}
		return fmt.Errorf("create %d seat locks: %w", len(locks), err)
	}

	return nil
}

// FindForSeatsTx loads all lock rows for (showtime, seats) regardless of
// holder or expiry, locking them FOR UPDATE so a commit and a concurrent
// renewal cannot interleave. The committer classifies the rows itself.
func (r *seatLockRepository) FindForSeatsTx(ctx context.Context, tx pgx.Tx, showtimeID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.SeatLock, error) {
	query := `
		SELECT id, seat_id, showtime_id, user_id, expires_at, created_at
		FROM seat_locks
		WHERE showtime_id = $1 AND seat_id = ANY($2)
		ORDER BY seat_id
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, query, showtimeID, seatIDs)
	if err != nil {
		r.log.Error("Failed to find locks for seats",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("find locks for showtime %s: %w", showtimeID.String(), err)
	}
	defer rows.Close()

	var locks []*entity.SeatLock
	for rows.Next() {
		var lock entity.SeatLock
		err := rows.Scan(
			&lock.ID,
			&lock.SeatID,
			&lock.ShowtimeID,
			&lock.UserID,
			&lock.ExpiresAt,
			&lock.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat lock row", zap.Error(err))
			return nil, fmt.Errorf("scan seat lock row: %w", err)
		}
		locks = append(locks, &lock)
	}

	return locks, nil
}

// DeleteByHolder releases the caller's own locks outside any transaction
// (user deselected seats). Rows already gone are a no-op.
func (r *seatLockRepository) DeleteByHolder(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) (int64, error) {
	query := `
		DELETE FROM seat_locks
		WHERE user_id = $1 AND showtime_id = $2 AND seat_id = ANY($3)
	`

	result, err := r.db.Exec(ctx, query, userID, showtimeID, seatIDs)
	if err != nil {
		r.log.Error("Failed to release locks",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("showtime_id", showtimeID.String()),
		)
		return 0, fmt.Errorf("release locks held by %s: %w", userID.String(), err)
	}

	return result.RowsAffected(), nil
}

// DeleteExpired removes up to batchSize locks whose expiry has passed.
// Deleting only already-expired rows makes this safe to run concurrently
// with acquire and commit, and with sweepers on other replicas.
func (r *seatLockRepository) DeleteExpired(ctx context.Context, batchSize int) (int64, error) {
	query := `
		DELETE FROM seat_locks
		WHERE id IN (
			SELECT id FROM seat_locks
			WHERE expires_at <= NOW()
			LIMIT $1
		)
	`

	result, err := r.db.Exec(ctx, query, batchSize)
	if err != nil {
		r.log.Error("Failed to delete expired locks", zap.Error(err))
		return 0, fmt.Errorf("delete expired locks: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanSeatIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	var seatIDs []uuid.UUID
	for rows.Next() {
		var seatID uuid.UUID
		if err := rows.Scan(&seatID); err != nil {
			return nil, fmt.Errorf("scan seat ID row: %w", err)
		}
		seatIDs = append(seatIDs, seatID)
	}
	return seatIDs, nil
}
