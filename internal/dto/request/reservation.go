package request

// LockSeatsRequest asks for temporary holds on the listed seats.
type LockSeatsRequest struct {
	SeatIDs []string `json:"seat_ids" validate:"required,min=1,unique,dive,uuid4"`
}

// ReleaseSeatsRequest gives up the caller's own holds on the listed seats.
type ReleaseSeatsRequest struct {
	SeatIDs []string `json:"seat_ids" validate:"required,min=1,unique,dive,uuid4"`
}

// CreateReservationRequest converts held locks into a booking.
type CreateReservationRequest struct {
	ShowtimeID string   `json:"showtime_id" validate:"required,uuid4"`
	SeatIDs    []string `json:"seat_ids" validate:"required,min=1,unique,dive,uuid4"`
}
