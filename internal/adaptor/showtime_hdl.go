package adaptor

import (
	"encoding/json"
	"net/http"

	"movie-reservation/internal/dto/request"
	"movie-reservation/internal/usecase"
	"movie-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// GetShowtimes handles GET /api/showtimes?movie_id=&date= (public)
func (h *ShowtimeHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	date := utils.ParseDate(query.Get("date"))

	showtimes, err := h.service.GetShowtimes(r.Context(), query.Get("movie_id"), date, req)
	if err != nil {
		writeServiceError(w, h.log, err, "get showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// GetShowtimeByID handles GET /api/showtimes/{id} (public)
func (h *ShowtimeHandler) GetShowtimeByID(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")
	if showtimeID == "" {
		utils.ResponseBadRequest(w, "Showtime ID is required", nil)
		return
	}

	showtime, err := h.service.GetShowtimeByID(r.Context(), showtimeID)
	if err != nil {
		writeServiceError(w, h.log, err, "get showtime by ID")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}

// ==================== ADMIN METHODS ====================

// CreateShowtime handles POST /api/admin/showtimes (admin only)
func (h *ShowtimeHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "success", showtime)
}

// UpdateShowtime handles PUT /api/admin/showtimes/{id} (admin only)
func (h *ShowtimeHandler) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")
	if showtimeID == "" {
		utils.ResponseBadRequest(w, "Showtime ID is required", nil)
		return
	}

	var req request.UpdateShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	showtime, err := h.service.UpdateShowtime(r.Context(), showtimeID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update showtime")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}

// DeleteShowtime handles DELETE /api/admin/showtimes/{id} (admin only)
func (h *ShowtimeHandler) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")
	if showtimeID == "" {
		utils.ResponseBadRequest(w, "Showtime ID is required", nil)
		return
	}

	if err := h.service.DeleteShowtime(r.Context(), showtimeID); err != nil {
		writeServiceError(w, h.log, err, "delete showtime")
		return
	}

	utils.ResponseNoContent(w)
}
