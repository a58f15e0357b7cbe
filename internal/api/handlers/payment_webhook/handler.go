package payment_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/consultation-booking/internal/api/handlers"
	processPaymentEvent "github.com/m04kA/consultation-booking/internal/usecase/process_payment_event"
)

// SignatureHeader заголовок с подписью события
const SignatureHeader = "Stripe-Signature"

const maxPayloadBytes = 65536

const (
	msgInvalidBody      = "could not read request body"
	msgInvalidSignature = "invalid signature"
	msgInvalidPayload   = "invalid event payload"
	msgNotConfigured    = "webhook is not configured"
)

type Handler struct {
	useCase ProcessPaymentEventUseCase
	logger  Logger
}

func NewHandler(useCase ProcessPaymentEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/webhooks/stripe
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Подпись считается по сырому телу, поэтому JSON здесь не декодируется
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /webhooks/stripe - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &processPaymentEvent.Request{
		Payload:   payload,
		Signature: r.Header.Get(SignatureHeader),
	})
	if err != nil {
		switch {
		case errors.Is(err, processPaymentEvent.ErrInvalidSignature):
			h.logger.Warn("POST /webhooks/stripe - Invalid signature: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, processPaymentEvent.ErrInvalidPayload):
			h.logger.Warn("POST /webhooks/stripe - Invalid payload: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPayload)

		case errors.Is(err, processPaymentEvent.ErrNotConfigured):
			h.logger.Error("POST /webhooks/stripe - Webhook secret is not configured")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgNotConfigured)

		default:
			// 5xx заставит провайдера повторить доставку
			h.logger.Error("POST /webhooks/stripe - Failed to process event: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /webhooks/stripe - Event processed: event_id=%s, result=%s", result.EventID, result.Result)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
