// internal/wire/wire.go
package wire

import (
	"net/http"

	"movie-reservation/internal/adaptor"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/usecase"
	"movie-reservation/pkg/database"
	"movie-reservation/pkg/middleware"
	"movie-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds everything the server needs at startup.
type App struct {
	Router  *chi.Mux
	Sweeper *usecase.LockSweeper
}

// Wiring initializes services, handlers, and the router.
func Wiring(db database.PgxIface, repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services and handlers
	service := usecase.NewService(db, repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Sweeper: usecase.NewLockSweeper(repo, config.Reservation, logger),
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, config, logger)
	wireUser(r, handler.User, config, logger)
	wireMovie(r, handler.Movie, config, logger)
	wireTheater(r, handler.Theater, config, logger)
	wireShowtime(r, handler.Showtime, handler.Reservation, config, logger)
	wireReservation(r, handler.Reservation, config, logger)
	wireReport(r, handler.Report, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
