package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

// seatConflictPayload is the error body for seat-level conflicts so clients
// can highlight the exact seats that failed.
type seatConflictPayload struct {
	SeatIDs []string `json:"seat_ids"`
}

// writeServiceError maps domain errors onto HTTP statuses. Sentinels from
// the repository layer decide the status; everything unrecognized is treated
// as an internal failure and not echoed to the client.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var conflict *repository.SeatConflictError
	if errors.As(err, &conflict) {
		ids := make([]string, len(conflict.SeatIDs))
		for i, id := range conflict.SeatIDs {
			ids[i] = id.String()
		}
		payload := seatConflictPayload{SeatIDs: ids}

		if errors.Is(err, repository.ErrNotFound) {
			log.Warn(operation+" failed - unknown seats", zap.Error(err))
			utils.ResponseJSON(w, http.StatusNotFound, false, err.Error(), nil, payload)
			return
		}

		log.Warn(operation+" failed - seat conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), payload)
		return
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, repository.ErrNotOwned):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, repository.ErrShowtimeStarted),
		errors.Is(err, repository.ErrDuplicate):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
