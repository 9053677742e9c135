package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain errors shared by the repository and usecase layers. Handlers map
// these to HTTP statuses; anything else is treated as a transient storage
// failure.
var (
	// ErrSeatUnavailable - acquire lost the race for at least one seat.
	// Caller should re-query availability and retry.
	ErrSeatUnavailable = errors.New("seat unavailable")

	// ErrLockMissing - commit attempted without holding a lock on every seat.
	ErrLockMissing = errors.New("seat lock missing")

	// ErrLockExpired - the caller's lock passed its TTL before commit.
	ErrLockExpired = errors.New("seat lock expired")

	// ErrLockNotOwned - the lock on a requested seat belongs to another user.
	ErrLockNotOwned = errors.New("seat lock held by another user")

	// ErrNotFound - referenced resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotOwned - resource belongs to a different user.
	ErrNotOwned = errors.New("not owned by user")

	// ErrShowtimeStarted - the screening already began, operation rejected.
	ErrShowtimeStarted = errors.New("showtime already started")

	// ErrDuplicate - unique constraint conflict on a non-seat resource.
	ErrDuplicate = errors.New("already exists")
)

// SeatConflictError carries the seat IDs that caused a lock or commit
// failure so the client can highlight them.
type SeatConflictError struct {
	Err     error
	SeatIDs []uuid.UUID
}

func (e *SeatConflictError) Error() string {
	ids := make([]string, len(e.SeatIDs))
	for i, id := range e.SeatIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("%s: seats [%s]", e.Err.Error(), strings.Join(ids, ", "))
}

func (e *SeatConflictError) Unwrap() error {
	return e.Err
}

// NewSeatConflict wraps a domain sentinel with the offending seat IDs.
func NewSeatConflict(err error, seatIDs []uuid.UUID) *SeatConflictError {
	return &SeatConflictError{Err: err, SeatIDs: seatIDs}
}

// Postgres SQLSTATE codes the lock protocol depends on.
const (
	pgUniqueViolation  = "23505"
	pgLockNotAvailable = "55P03"
)

// IsUniqueViolation reports whether err is a unique constraint violation.
// A concurrent conflicting lock insert surfaces this way at commit.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsLockTimeout reports whether err is a row-lock wait timeout
// (lock_timeout exceeded while blocked on SELECT ... FOR UPDATE).
func IsLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable
}
