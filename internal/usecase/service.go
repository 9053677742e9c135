package usecase

import (
	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/database"
	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Movie       MovieService
	Theater     TheaterService
	Showtime    ShowtimeService
	Reservation ReservationService
	Report      ReportService
}

func NewService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config.JWT, log),
		User:        NewUserService(repo, log),
		Movie:       NewMovieService(repo, log),
		Theater:     NewTheaterService(repo, log),
		Showtime:    NewShowtimeService(repo, log),
		Reservation: NewReservationService(db, repo, config.Reservation, log),
		Report:      NewReportService(repo, log),
	}
}
