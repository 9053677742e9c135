package entity

import (
	"time"

	"github.com/google/uuid"
)

// SeatLock is a temporary, exclusive hold on one seat for one showtime.
// The seat_locks table carries a unique constraint on (seat_id, showtime_id),
// so at most one row can exist per pair regardless of expiry.
type SeatLock struct {
	BaseSimple
	SeatID     uuid.UUID `db:"seat_id"`
	ShowtimeID uuid.UUID `db:"showtime_id"`
	UserID     uuid.UUID `db:"user_id"`
	ExpiresAt  time.Time `db:"expires_at"`
}

// IsExpired reports whether the hold is past its TTL. Expired locks are
// invisible to availability and unusable for commit.
func (l *SeatLock) IsExpired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}
