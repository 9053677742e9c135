package entity

import (
	"fmt"

	"github.com/google/uuid"
)

type SeatType string

const (
	SeatTypeRegular SeatType = "regular"
	SeatTypePremium SeatType = "premium"
	SeatTypeVIP     SeatType = "vip"
)

type Seat struct {
	BaseSimple
	TheaterID  uuid.UUID `db:"theater_id"`
	RowLabel   string    `db:"row_label"`   // A, B, C, etc.
	SeatNumber int       `db:"seat_number"` // 1, 2, 3, etc.
	SeatType   SeatType  `db:"seat_type"`
}

// Label returns the human-readable seat label, e.g. "A12".
func (s *Seat) Label() string {
	return fmt.Sprintf("%s%d", s.RowLabel, s.SeatNumber)
}

// SeatAvailability is a read-model row produced by the availability query.
type SeatAvailability struct {
	Seat
	IsReserved bool
	IsLocked   bool
}
