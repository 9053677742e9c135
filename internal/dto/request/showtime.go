package request

import "time"

type CreateShowtimeRequest struct {
	MovieID   string    `json:"movie_id" validate:"required,uuid4"`
	TheaterID string    `json:"theater_id" validate:"required,uuid4"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Price     float64   `json:"price" validate:"required,gt=0"`
}

type UpdateShowtimeRequest struct {
	MovieID   string    `json:"movie_id" validate:"required,uuid4"`
	TheaterID string    `json:"theater_id" validate:"required,uuid4"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Price     float64   `json:"price" validate:"required,gt=0"`
}
