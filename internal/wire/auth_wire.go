package wire

import (
	"movie-reservation/internal/adaptor"
	"movie-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/auth/register - Create account
	r.Post("/api/auth/register", authHandler.Register)

	// POST /api/auth/login - Obtain access token
	r.Post("/api/auth/login", authHandler.Login)
}
