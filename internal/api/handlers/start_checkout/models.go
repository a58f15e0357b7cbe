package start_checkout

import (
	"github.com/m04kA/consultation-booking/internal/api/handlers"
	"github.com/m04kA/consultation-booking/internal/domain"
	startCheckout "github.com/m04kA/consultation-booking/internal/usecase/start_checkout"
	"github.com/m04kA/consultation-booking/pkg/types"
)

// StartCheckoutRequest HTTP request model
type StartCheckoutRequest struct {
	ServiceID     string `json:"serviceId"`
	Date          string `json:"date"` // "2025-05-05"
	Time          string `json:"time"` // "09:00"
	Name          string `json:"name"`
	Email         string `json:"email"`
	WhatsApp      string `json:"whatsapp"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// StartCheckoutResponse HTTP response model
type StartCheckoutResponse struct {
	Outcome      string                         `json:"outcome"`
	Token        string                         `json:"token"`
	RedirectURL  string                         `json:"redirectUrl,omitempty"`
	Price        string                         `json:"price"`
	Confirmation *handlers.ConfirmationResponse `json:"confirmation,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Формат даты и времени проверяется валидацией черновика.
func (r *StartCheckoutRequest) ToUseCaseRequest() *startCheckout.Request {
	return &startCheckout.Request{
		Draft: domain.AppointmentDraft{
			ServiceID: r.ServiceID,
			Date:      types.DateKey(r.Date),
			Time:      types.TimeString(r.Time),
			Contact: domain.ContactDetails{
				Name:     r.Name,
				Email:    r.Email,
				WhatsApp: r.WhatsApp,
			},
			PaymentMethod: r.PaymentMethod,
		},
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *startCheckout.Response) *StartCheckoutResponse {
	return &StartCheckoutResponse{
		Outcome:      string(resp.Outcome),
		Token:        resp.Token,
		RedirectURL:  resp.RedirectURL,
		Price:        resp.Price,
		Confirmation: handlers.FromConfirmed(resp.Booking),
	}
}
