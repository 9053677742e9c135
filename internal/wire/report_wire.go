package wire

import (
	"movie-reservation/internal/adaptor"
	"movie-reservation/pkg/middleware"
	"movie-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReport(
	r chi.Router,
	reportHandler *adaptor.ReportHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/reports", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/reports/capacity - Occupancy per showtime
		r.Get("/capacity", reportHandler.GetCapacityReport)

		// GET /api/admin/reports/revenue - Confirmed revenue per showtime
		r.Get("/revenue", reportHandler.GetRevenueReport)
	})
}
