package repository

import (
	"movie-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Movie       MovieRepository
	Theater     TheaterRepository
	Seat        SeatRepository
	Showtime    ShowtimeRepository
	SeatLock    SeatLockRepository
	Reservation ReservationRepository
	Report      ReportRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Movie:       NewMovieRepository(db, log),
		Theater:     NewTheaterRepository(db, log),
		Seat:        NewSeatRepository(db, log),
		Showtime:    NewShowtimeRepository(db, log),
		SeatLock:    NewSeatLockRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Report:      NewReportRepository(db, log),
	}
}
