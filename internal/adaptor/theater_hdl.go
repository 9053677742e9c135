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

type TheaterHandler struct {
	service usecase.TheaterService
	log     *zap.Logger
}

func NewTheaterHandler(service usecase.TheaterService, log *zap.Logger) *TheaterHandler {
	return &TheaterHandler{
		service: service,
		log:     log.With(zap.String("handler", "theater")),
	}
}

// GetTheaters handles GET /api/theaters (public)
func (h *TheaterHandler) GetTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := h.service.GetTheaters(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get theaters")
		return
	}

	utils.ResponseSuccess(w, "success", theaters)
}

// GetTheaterSeats handles GET /api/theaters/{id}/seats (public)
func (h *TheaterHandler) GetTheaterSeats(w http.ResponseWriter, r *http.Request) {
	theaterID := chi.URLParam(r, "id")
	if theaterID == "" {
		utils.ResponseBadRequest(w, "Theater ID is required", nil)
		return
	}

	seats, err := h.service.GetTheaterSeats(r.Context(), theaterID)
	if err != nil {
		writeServiceError(w, h.log, err, "get theater seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// ==================== ADMIN METHODS ====================

// CreateTheater handles POST /api/admin/theaters (admin only)
func (h *TheaterHandler) CreateTheater(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTheaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	theater, err := h.service.CreateTheater(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create theater")
		return
	}

	utils.ResponseCreated(w, "success", theater)
}
