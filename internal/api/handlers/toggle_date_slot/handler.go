package toggle_date_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/consultation-booking/internal/api/handlers"
	"github.com/m04kA/consultation-booking/internal/service/availability"
	"github.com/m04kA/consultation-booking/internal/service/availability/models"
	"github.com/m04kA/consultation-booking/pkg/types"
)

const (
	msgInvalidDate = "invalid date format, expected YYYY-MM-DD"
	msgInvalidSlot = "slot must be one of the consultation slots"
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

// Handle POST /api/v1/admin/availability/dates/{date}/slots/{slot}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := types.ParseDateKey(vars["date"])
	if err != nil {
		h.logger.Warn("POST /admin/availability/dates/{date}/slots/{slot}/toggle - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slot, err := types.NewTimeStringFromString(vars["slot"])
	if err != nil {
		h.logger.Warn("POST /admin/availability/dates/{date}/slots/{slot}/toggle - Invalid slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.service.ToggleDate(r.Context(), &models.ToggleDateRequest{Date: date, Slot: slot})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /admin/availability/dates/{date}/slots/{slot}/toggle - Invalid input: date=%s, slot=%s, error=%v",
				date, slot, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, availability.ErrPersistence):
			h.logger.Error("POST /admin/availability/dates/{date}/slots/{slot}/toggle - Not saved: date=%s, slot=%s, error=%v",
				date, slot, err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, handlers.StateErrorResponse{Error: msgNotSaved, State: result})

		default:
			h.logger.Error("POST /admin/availability/dates/{date}/slots/{slot}/toggle - Failed to toggle: date=%s, slot=%s, error=%v",
				date, slot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/availability/dates/{date}/slots/{slot}/toggle - Toggled: date=%s, slot=%s, slots=%d",
		date, slot, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
