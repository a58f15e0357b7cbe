package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/consultation-booking/internal/api/handlers"
	"github.com/m04kA/consultation-booking/internal/service/availability"
	"github.com/m04kA/consultation-booking/pkg/types"
)

const msgInvalidDate = "invalid date format, expected YYYY-MM-DD"

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

// Handle GET /api/v1/admin/availability
// Query params: date (опционально). Без даты отдается весь шаблон и все переопределения.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.handleSettings(w, r)
		return
	}

	date, err := types.ParseDateKey(dateStr)
	if err != nil {
		h.logger.Warn("GET /admin/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetDate(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /admin/availability - Invalid date: date=%s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /admin/availability - Failed to get date availability: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/availability - Date availability retrieved: date=%s, source=%s", date, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetSettings(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/availability - Failed to get settings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/availability - Settings retrieved: recurring_days=%d, dates=%d",
		len(result.Recurring), len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
