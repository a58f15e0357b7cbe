package get_prices

import (
	"net/http"

	"github.com/m04kA/consultation-booking/internal/api/handlers"
)

type Handler struct {
	service PriceService
	logger  Logger
}

func NewHandler(service PriceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/prices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetPrices(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/prices - Failed to get prices: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/prices - Prices retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, result)
}
