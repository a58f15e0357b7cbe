package reset_prices

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

// Handle POST /api/v1/admin/prices/reset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Reset(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/prices/reset - Failed to reset prices: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/prices/reset - Prices restored to defaults")
	handlers.RespondJSON(w, http.StatusOK, result)
}
