package adaptor

import (
	"net/http"

	"movie-reservation/internal/usecase"
	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

type ReportHandler struct {
	service usecase.ReportService
	log     *zap.Logger
}

func NewReportHandler(service usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With(zap.String("handler", "report")),
	}
}

// GetCapacityReport handles GET /api/admin/reports/capacity?from=&to= (admin only)
func (h *ReportHandler) GetCapacityReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from := utils.ParseDate(query.Get("from"))
	to := utils.ParseDate(query.Get("to"))

	report, err := h.service.GetCapacityReport(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, h.log, err, "get capacity report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// GetRevenueReport handles GET /api/admin/reports/revenue?from=&to= (admin only)
func (h *ReportHandler) GetRevenueReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from := utils.ParseDate(query.Get("from"))
	to := utils.ParseDate(query.Get("to"))

	report, err := h.service.GetRevenueReport(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, h.log, err, "get revenue report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}
