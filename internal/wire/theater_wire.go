package wire

import (
	"movie-reservation/internal/adaptor"
	"movie-reservation/pkg/middleware"
	"movie-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTheater(
	r chi.Router,
	theaterHandler *adaptor.TheaterHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/theaters - List theaters
	r.Get("/api/theaters", theaterHandler.GetTheaters)

	// GET /api/theaters/{id}/seats - Seat layout of a theater
	r.Get("/api/theaters/{id}/seats", theaterHandler.GetTheaterSeats)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/theaters", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/theaters - Create theater with its seat layout
		r.Post("/", theaterHandler.CreateTheater)
	})
}
