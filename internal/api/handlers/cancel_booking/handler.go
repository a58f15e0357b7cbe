package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/consultation-booking/internal/api/handlers"
	"github.com/m04kA/consultation-booking/internal/service/bookings"
	"github.com/m04kA/consultation-booking/pkg/types"
)

const (
	msgInvalidKey = "date must be YYYY-MM-DD and slot must be HH:MM"
	msgNotFound   = "booking not found"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/bookings/{date}/{slot}
// Бронирование удаляется полностью, слот снова свободен
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, slot := types.DateKey(vars["date"]), types.TimeString(vars["slot"])

	err := h.service.Cancel(r.Context(), date, slot)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/bookings/{date}/{slot} - Invalid key: date=%s, slot=%s", date, slot)
			handlers.RespondBadRequest(w, msgInvalidKey)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /admin/bookings/{date}/{slot} - Booking not found: date=%s, slot=%s", date, slot)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/bookings/{date}/{slot} - Failed to cancel booking: date=%s, slot=%s, error=%v",
				date, slot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/bookings/{date}/{slot} - Booking cancelled successfully: date=%s, slot=%s", date, slot)
	handlers.RespondNoContent(w)
}
