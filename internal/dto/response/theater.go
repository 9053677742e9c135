package response

import (
	"movie-reservation/internal/data/entity"
)

type TheaterResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TotalSeats int    `json:"total_seats"`
}

type SeatResponse struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	RowLabel string          `json:"row_label"`
	Number   int             `json:"number"`
	SeatType entity.SeatType `json:"seat_type"`
}

// Helper converters
func TheaterToResponse(theater *entity.Theater) TheaterResponse {
	return TheaterResponse{
		ID:         theater.ID.String(),
		Name:       theater.Name,
		TotalSeats: theater.TotalSeats,
	}
}

func TheatersToResponse(theaters []*entity.Theater) []TheaterResponse {
	out := make([]TheaterResponse, 0, len(theaters))
	for _, theater := range theaters {
		out = append(out, TheaterToResponse(theater))
	}
	return out
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:       seat.ID.String(),
		Label:    seat.Label(),
		RowLabel: seat.RowLabel,
		Number:   seat.SeatNumber,
		SeatType: seat.SeatType,
	}
}

func SeatsToResponse(seats []*entity.Seat) []SeatResponse {
	out := make([]SeatResponse, 0, len(seats))
	for _, seat := range seats {
		out = append(out, SeatToResponse(seat))
	}
	return out
}
