package complete_checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/consultation-booking/internal/api/handlers"
	"github.com/m04kA/consultation-booking/internal/domain"
	completeCheckout "github.com/m04kA/consultation-booking/internal/usecase/complete_checkout"
	createBooking "github.com/m04kA/consultation-booking/internal/usecase/create_booking"
)

const (
	msgInvalidParams       = "payment and token query parameters are required"
	msgHandoffNotFound     = "appointment details not found, please start the booking again"
	msgHandoffExpired      = "appointment details expired, please start the booking again"
	msgPaymentNotCompleted = "payment has not been completed"
	msgPaymentProvider     = "could not verify the payment, please try again"
	msgSlotTaken           = "this slot has just been booked by someone else, please contact support"
	msgCommitFailed        = "your payment was received but the booking could not be saved yet, please try again"
)

type Handler struct {
	useCase CompleteCheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CompleteCheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/checkout/return
// Query params: payment (success|cancel), token, session_id (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq := ToUseCaseRequest(r.URL.Query())

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, useCaseReq, err)
		return
	}

	h.logger.Info("GET /checkout/return - Checkout completed: payment=%s, next_step=%s", useCaseReq.Payment, result.NextStep)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, req *completeCheckout.Request, err error) {
	// Ошибки, после которых черновик сохранен, отдаются вместе с ним
	var preserved *completeCheckout.DraftPreservedError
	if errors.As(err, &preserved) {
		status, msg := http.StatusServiceUnavailable, msgCommitFailed
		switch {
		case errors.Is(err, completeCheckout.ErrPaymentNotCompleted):
			status, msg = http.StatusPaymentRequired, msgPaymentNotCompleted
		case errors.Is(err, completeCheckout.ErrPaymentProvider):
			status, msg = http.StatusBadGateway, msgPaymentProvider
		}
		h.logger.Warn("GET /checkout/return - Draft preserved: status=%d, error=%v", status, err)
		handlers.RespondJSON(w, status, handlers.DraftErrorResponse{Error: msg, Draft: handlers.FromDraft(preserved.Draft)})
		return
	}

	switch {
	case errors.Is(err, completeCheckout.ErrInvalidInput):
		h.logger.Warn("GET /checkout/return - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)

	case errors.Is(err, completeCheckout.ErrHandoffNotFound), errors.Is(err, completeCheckout.ErrHandoffCorrupt):
		h.logger.Warn("GET /checkout/return - Handoff unavailable: %v", err)
		handlers.RespondNotFound(w, msgHandoffNotFound)

	case errors.Is(err, completeCheckout.ErrHandoffExpired):
		h.logger.Warn("GET /checkout/return - Handoff expired")
		handlers.RespondError(w, http.StatusGone, msgHandoffExpired)

	case errors.Is(err, createBooking.ErrSlotTaken):
		h.logger.Error("GET /checkout/return - Paid slot already taken: payment=%s", req.Payment)
		handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

	case errors.Is(err, domain.ErrValidation):
		h.logger.Error("GET /checkout/return - Saved draft failed validation: %v", err)
		handlers.RespondValidationError(w, err)

	default:
		h.logger.Error("GET /checkout/return - Failed to complete checkout: error=%v", err)
		handlers.RespondInternalError(w)
	}
}
