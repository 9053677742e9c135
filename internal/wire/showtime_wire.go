package wire

import (
	"movie-reservation/internal/adaptor"
	"movie-reservation/pkg/middleware"
	"movie-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShowtime(
	r chi.Router,
	showtimeHandler *adaptor.ShowtimeHandler,
	reservationHandler *adaptor.ReservationHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/showtimes - List showtimes, filterable by movie and date
	r.Get("/api/showtimes", showtimeHandler.GetShowtimes)

	// GET /api/showtimes/{id} - Showtime details
	r.Get("/api/showtimes/{id}", showtimeHandler.GetShowtimeByID)

	// GET /api/showtimes/{id}/seats - Seat availability snapshot
	r.Get("/api/showtimes/{id}/seats", reservationHandler.GetSeatAvailability)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/showtimes/{id}/locks - Hold seats before reserving
		r.Post("/api/showtimes/{id}/locks", reservationHandler.LockSeats)

		// DELETE /api/showtimes/{id}/locks - Give up held seats
		r.Delete("/api/showtimes/{id}/locks", reservationHandler.ReleaseSeats)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/showtimes", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		r.Post("/", showtimeHandler.CreateShowtime)       // POST /api/admin/showtimes
		r.Put("/{id}", showtimeHandler.UpdateShowtime)    // PUT /api/admin/showtimes/{id}
		r.Delete("/{id}", showtimeHandler.DeleteShowtime) // DELETE /api/admin/showtimes/{id}
	})
}
