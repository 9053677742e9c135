package entity

import (
	"time"

	"github.com/google/uuid"
)

type Showtime struct {
	Base
	MovieID   uuid.UUID `db:"movie_id"`
	TheaterID uuid.UUID `db:"theater_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Price     float64   `db:"price"`
}

// HasStarted reports whether the screening start time has passed.
// Cancellation and new locks are gated on this.
func (s *Showtime) HasStarted(now time.Time) bool {
	return !s.StartTime.After(now)
}
