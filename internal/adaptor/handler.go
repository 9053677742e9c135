package adaptor

import (
	"movie-reservation/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Movie       *MovieHandler
	Theater     *TheaterHandler
	Showtime    *ShowtimeHandler
	Reservation *ReservationHandler
	Report      *ReportHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		User:        NewUserHandler(service.User, log),
		Movie:       NewMovieHandler(service.Movie, log),
		Theater:     NewTheaterHandler(service.Theater, log),
		Showtime:    NewShowtimeHandler(service.Showtime, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Report:      NewReportHandler(service.Report, log),
	}
}
