package welcome_tips

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/consultation-booking/internal/api/handlers"
	"github.com/m04kA/consultation-booking/internal/service/tips"
	"github.com/m04kA/consultation-booking/pkg/types"
)

const (
	msgInvalidKey    = "date must be YYYY-MM-DD and slot must be HH:MM"
	msgNotFound      = "booking not found"
	msgNotConfigured = "API key not configured, please add the Gemini API key to the configuration"
	msgGeneration    = "could not generate welcome tips, please try again later"
)

type Handler struct {
	service TipsService
	logger  Logger
}

func NewHandler(service TipsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/{date}/{slot}/welcome-tips
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, slot := types.DateKey(vars["date"]), types.TimeString(vars["slot"])

	result, err := h.service.Generate(r.Context(), date, slot)
	if err != nil {
		switch {
		case errors.Is(err, tips.ErrInvalidInput):
			h.logger.Warn("POST /admin/bookings/{date}/{slot}/welcome-tips - Invalid key: date=%s, slot=%s", date, slot)
			handlers.RespondBadRequest(w, msgInvalidKey)

		case errors.Is(err, tips.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/{date}/{slot}/welcome-tips - Booking not found: date=%s, slot=%s", date, slot)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tips.ErrNotConfigured):
			h.logger.Warn("POST /admin/bookings/{date}/{slot}/welcome-tips - Generator not configured")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgNotConfigured)

		case errors.Is(err, tips.ErrGeneration):
			h.logger.Error("POST /admin/bookings/{date}/{slot}/welcome-tips - Generation failed: date=%s, slot=%s, error=%v",
				date, slot, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGeneration)

		default:
			h.logger.Error("POST /admin/bookings/{date}/{slot}/welcome-tips - Failed: date=%s, slot=%s, error=%v",
				date, slot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{date}/{slot}/welcome-tips - Tips generated: date=%s, slot=%s", date, slot)
	handlers.RespondJSON(w, http.StatusOK, result)
}
