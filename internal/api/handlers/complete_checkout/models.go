package complete_checkout

import (
	"net/url"

	"github.com/m04kA/consultation-booking/internal/api/handlers"
	completeCheckout "github.com/m04kA/consultation-booking/internal/usecase/complete_checkout"
)

// CompleteCheckoutResponse HTTP response model
type CompleteCheckoutResponse struct {
	NextStep     string                         `json:"nextStep"`
	Draft        *handlers.DraftResponse        `json:"draft"`
	Confirmation *handlers.ConfirmationResponse `json:"confirmation,omitempty"`
}

// ToUseCaseRequest конвертирует query параметры адреса возврата в модель use case
func ToUseCaseRequest(query url.Values) *completeCheckout.Request {
	return &completeCheckout.Request{
		Token:     query.Get("token"),
		Payment:   query.Get("payment"),
		SessionID: query.Get("session_id"),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *completeCheckout.Response) *CompleteCheckoutResponse {
	return &CompleteCheckoutResponse{
		NextStep:     string(resp.NextStep),
		Draft:        handlers.FromDraft(resp.Draft),
		Confirmation: handlers.FromConfirmed(resp.Booking),
	}
}
