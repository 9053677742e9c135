package wire

import (
	"movie-reservation/internal/adaptor"
	"movie-reservation/pkg/middleware"
	"movie-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// GET /api/user/profile - Own account details
		r.Get("/api/user/profile", userHandler.GetProfile)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/users", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/users - List all users
		r.Get("/", userHandler.GetAllUsers)

		// PUT /api/admin/users/{id}/promote - Grant admin role
		r.Put("/{id}/promote", userHandler.PromoteToAdmin)
	})
}
