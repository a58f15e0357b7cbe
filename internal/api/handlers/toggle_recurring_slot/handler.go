package toggle_recurring_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/consultation-booking/internal/api/handlers"
	"github.com/m04kA/consultation-booking/internal/service/availability"
	"github.com/m04kA/consultation-booking/internal/service/availability/models"
	"github.com/m04kA/consultation-booking/pkg/types"
)

const (
	msgInvalidDay  = "day must be a number between 0 (Monday) and 6 (Sunday)"
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

// Handle POST /api/v1/admin/availability/recurring/{day}/slots/{slot}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	day, err := strconv.Atoi(vars["day"])
	if err != nil {
		h.logger.Warn("POST /admin/availability/recurring/{day}/slots/{slot}/toggle - Invalid day: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	slot, err := types.NewTimeStringFromString(vars["slot"])
	if err != nil {
		h.logger.Warn("POST /admin/availability/recurring/{day}/slots/{slot}/toggle - Invalid slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.service.ToggleRecurring(r.Context(), &models.ToggleRecurringRequest{Day: day, Slot: slot})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /admin/availability/recurring/{day}/slots/{slot}/toggle - Invalid input: day=%d, slot=%s, error=%v",
				day, slot, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, availability.ErrPersistence):
			h.logger.Error("POST /admin/availability/recurring/{day}/slots/{slot}/toggle - Not saved: day=%d, slot=%s, error=%v",
				day, slot, err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, handlers.StateErrorResponse{Error: msgNotSaved, State: result})

		default:
			h.logger.Error("POST /admin/availability/recurring/{day}/slots/{slot}/toggle - Failed to toggle: day=%d, slot=%s, error=%v",
				day, slot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/availability/recurring/{day}/slots/{slot}/toggle - Toggled: day=%d, slot=%s, slots=%d",
		day, slot, len(result.Recurring[day]))
	handlers.RespondJSON(w, http.StatusOK, result)
}
