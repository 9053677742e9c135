package wire

import (
	"movie-reservation/internal/adaptor"
	"movie-reservation/pkg/middleware"
	"movie-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/api/reservations", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/reservations - Commit held seats into a booking
		r.Post("/", reservationHandler.CreateReservation)

		// GET /api/reservations - Own reservation history
		r.Get("/", reservationHandler.GetUserReservations)

		// GET /api/reservations/{id} - Reservation details (owner or admin)
		r.Get("/{id}", reservationHandler.GetReservationByID)

		// DELETE /api/reservations/{id} - Cancel before the showtime starts
		r.Delete("/{id}", reservationHandler.CancelReservation)
	})
}
