package response

import (
	"time"

	"github.com/google/uuid"

	"movie-reservation/internal/data/entity"
)

// SeatStatusResponse is one seat in the availability view. Available means
// neither reserved under a confirmed booking nor held by an active lock.
type SeatStatusResponse struct {
	SeatResponse
	IsAvailable bool `json:"is_available"`
	IsReserved  bool `json:"is_reserved"`
	IsLocked    bool `json:"is_locked"`
}

type SeatAvailabilityResponse struct {
	ShowtimeID     string               `json:"showtime_id"`
	TotalSeats     int                  `json:"total_seats"`
	AvailableSeats int                  `json:"available_seats"`
	Seats          []SeatStatusResponse `json:"seats"`
}

type LockSeatsResponse struct {
	ShowtimeID    string    `json:"showtime_id"`
	LockedSeatIDs []string  `json:"locked_seat_ids"`
	ExpiresAt     time.Time `json:"expires_at"`
}

type ReleaseSeatsResponse struct {
	ShowtimeID    string `json:"showtime_id"`
	ReleasedSeats int    `json:"released_seats"`
}

type ReservationResponse struct {
	ID         string                   `json:"id"`
	UserID     string                   `json:"user_id"`
	ShowtimeID string                   `json:"showtime_id"`
	MovieTitle string                   `json:"movie_title,omitempty"`
	StartTime  *time.Time               `json:"start_time,omitempty"`
	Status     entity.ReservationStatus `json:"status"`
	TotalPrice float64                  `json:"total_price"`
	SeatLabels []string                 `json:"seat_labels,omitempty"`
	SeatIDs    []string                 `json:"seat_ids"`
	CreatedAt  time.Time                `json:"created_at"`
}

// Helper converters
func AvailabilityToResponse(showtimeID uuid.UUID, seats []*entity.SeatAvailability) SeatAvailabilityResponse {
	out := SeatAvailabilityResponse{
		ShowtimeID: showtimeID.String(),
		TotalSeats: len(seats),
		Seats:      make([]SeatStatusResponse, 0, len(seats)),
	}

	for _, s := range seats {
		available := !s.IsReserved && !s.IsLocked
		if available {
			out.AvailableSeats++
		}
		out.Seats = append(out.Seats, SeatStatusResponse{
			SeatResponse: SeatToResponse(&s.Seat),
			IsAvailable:  available,
			IsReserved:   s.IsReserved,
			IsLocked:     s.IsLocked,
		})
	}

	return out
}

func ReservationToResponse(reservation *entity.Reservation, seats []*entity.Seat) ReservationResponse {
	resp := ReservationResponse{
		ID:         reservation.ID.String(),
		UserID:     reservation.UserID.String(),
		ShowtimeID: reservation.ShowtimeID.String(),
		Status:     reservation.Status,
		TotalPrice: reservation.TotalPrice,
		CreatedAt:  reservation.CreatedAt,
	}

	resp.SeatIDs = make([]string, 0, len(seats))
	resp.SeatLabels = make([]string, 0, len(seats))
	for _, seat := range seats {
		resp.SeatIDs = append(resp.SeatIDs, seat.ID.String())
		resp.SeatLabels = append(resp.SeatLabels, seat.Label())
	}

	return resp
}
