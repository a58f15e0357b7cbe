package payment_webhook

import processPaymentEvent "github.com/m04kA/consultation-booking/internal/usecase/process_payment_event"

// WebhookResponse HTTP response model
type WebhookResponse struct {
	Received bool   `json:"received"`
	EventID  string `json:"eventId"`
	Result   string `json:"result"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *processPaymentEvent.Response) *WebhookResponse {
	return &WebhookResponse{
		Received: true,
		EventID:  resp.EventID,
		Result:   string(resp.Result),
	}
}
