package entity

import (
	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	Base
	UserID     uuid.UUID         `db:"user_id"`
	ShowtimeID uuid.UUID         `db:"showtime_id"`
	Status     ReservationStatus `db:"status"`
	TotalPrice float64           `db:"total_price"`
}

// ReservationSeat links a reservation to one seat. Rows survive cancellation
// for audit; only seats under a confirmed reservation count as occupied.
type ReservationSeat struct {
	ReservationID uuid.UUID `db:"reservation_id"`
	SeatID        uuid.UUID `db:"seat_id"`
}
