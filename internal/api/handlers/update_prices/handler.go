package update_prices

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/consultation-booking/internal/api/handlers"
	"github.com/m04kA/consultation-booking/internal/service/prices"
	"github.com/m04kA/consultation-booking/internal/service/prices/models"
)

const msgInvalidRequestBody = "invalid request body"

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

// Handle PUT /api/v1/admin/prices
// Body: {"prices": {"visaExtensionPrice": "45"}}, неуказанные ключи не меняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePricesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/prices - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, prices.ErrInvalidInput):
			h.logger.Warn("PUT /admin/prices - Invalid data: error=%v", err)
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), prices.ErrInvalidInput.Error()+": "))

		default:
			h.logger.Error("PUT /admin/prices - Failed to update prices: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/prices - Prices updated successfully: keys=%d", len(req.Prices))
	handlers.RespondJSON(w, http.StatusOK, result)
}
