package clear_date_override

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/consultation-booking/internal/api/handlers"
	"github.com/m04kA/consultation-booking/internal/service/availability"
	"github.com/m04kA/consultation-booking/pkg/types"
)

const (
	msgInvalidDate = "invalid date format, expected YYYY-MM-DD"
	msgNotSaved    = "changes are applied but could not be saved, they will be saved with the next change"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/availability/dates/{date}
// Дата снова следует недельному шаблону
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := types.ParseDateKey(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("DELETE /admin/availability/dates/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ClearDate(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/availability/dates/{date} - Invalid input: date=%s, error=%v", date, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, availability.ErrPersistence):
			h.logger.Error("DELETE /admin/availability/dates/{date} - Not saved: date=%s, error=%v", date, err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, handlers.StateErrorResponse{Error: msgNotSaved, State: result})

		default:
			h.logger.Error("DELETE /admin/availability/dates/{date} - Failed to clear override: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/availability/dates/{date} - Override cleared: date=%s, source=%s", date, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
