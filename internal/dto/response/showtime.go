package response

import (
	"time"

	"movie-reservation/internal/data/entity"
)

type ShowtimeResponse struct {
	ID          string    `json:"id"`
	MovieID     string    `json:"movie_id"`
	MovieTitle  string    `json:"movie_title,omitempty"`
	TheaterID   string    `json:"theater_id"`
	TheaterName string    `json:"theater_name,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Price       float64   `json:"price"`
}

// Helper converters
func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:        showtime.ID.String(),
		MovieID:   showtime.MovieID.String(),
		TheaterID: showtime.TheaterID.String(),
		StartTime: showtime.StartTime,
		EndTime:   showtime.EndTime,
		Price:     showtime.Price,
	}
}

func ShowtimesToResponse(showtimes []*entity.Showtime) []ShowtimeResponse {
	out := make([]ShowtimeResponse, 0, len(showtimes))
	for _, showtime := range showtimes {
		out = append(out, ShowtimeToResponse(showtime))
	}
	return out
}
