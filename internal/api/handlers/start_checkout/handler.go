package start_checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/consultation-booking/internal/api/handlers"
	"github.com/m04kA/consultation-booking/internal/domain"
	createBooking "github.com/m04kA/consultation-booking/internal/usecase/create_booking"
	startCheckout "github.com/m04kA/consultation-booking/internal/usecase/start_checkout"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgServiceNotFound      = "consultation not found"
	msgSlotNotAvailable     = "the selected time is no longer available, please pick another time"
	msgSlotTaken            = "this slot has just been booked by someone else, please pick another time"
	msgPaymentConfiguration = "payment is not configured for this consultation, please contact support"
	msgPaymentDeclined      = "your payment was declined, please try another card"
	msgPaymentProvider      = "the payment provider is unavailable, please try again"
)

type Handler struct {
	useCase StartCheckoutUseCase
	logger  Logger
}

func NewHandler(useCase StartCheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req StartCheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq := req.ToUseCaseRequest()

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /checkout - Validation failed: %v", err)
			handlers.RespondValidationError(w, err)

		case errors.Is(err, startCheckout.ErrServiceNotFound), errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /checkout - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, startCheckout.ErrSlotNotAvailable):
			h.logger.Warn("POST /checkout - Slot not available: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /checkout - Slot taken: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, startCheckout.ErrPaymentConfiguration):
			h.logger.Error("POST /checkout - Payment not configured: service_id=%s, error=%v", req.ServiceID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgPaymentConfiguration)

		case errors.Is(err, startCheckout.ErrPaymentDeclined):
			h.logger.Warn("POST /checkout - Payment declined: service_id=%s, error=%v", req.ServiceID, err)
			handlers.RespondJSON(w, http.StatusPaymentRequired, handlers.DraftErrorResponse{
				Error: msgPaymentDeclined,
				Draft: handlers.FromDraft(useCaseReq.Draft),
			})

		case errors.Is(err, startCheckout.ErrPaymentProvider):
			h.logger.Error("POST /checkout - Payment provider failed: service_id=%s, error=%v", req.ServiceID, err)
			handlers.RespondJSON(w, http.StatusBadGateway, handlers.DraftErrorResponse{
				Error: msgPaymentProvider,
				Draft: handlers.FromDraft(useCaseReq.Draft),
			})

		default:
			h.logger.Error("POST /checkout - Failed to start checkout: service_id=%s, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Outcome == startCheckout.OutcomeConfirmed {
		status = http.StatusCreated
	}

	h.logger.Info("POST /checkout - Checkout started: service_id=%s, date=%s, time=%s, outcome=%s",
		req.ServiceID, req.Date, req.Time, result.Outcome)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
