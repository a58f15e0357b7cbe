package handlers

import (
	"github.com/m04kA/consultation-booking/internal/domain"
	createBooking "github.com/m04kA/consultation-booking/internal/usecase/create_booking"
	"github.com/m04kA/consultation-booking/pkg/types"
)

// ConfirmationResponse подтвержденная запись для экрана успеха
type ConfirmationResponse struct {
	Name             string           `json:"name"`
	Date             types.DateKey    `json:"date"`
	Time             types.TimeString `json:"time"`
	ServiceTitle     string           `json:"serviceTitle"`
	WhatsApp         string           `json:"whatsapp"`
	CalendarEventURL string           `json:"calendarEventUrl"`
	WhatsAppURL      string           `json:"whatsappUrl"`
	Created          bool             `json:"created"`
}

// DraftResponse черновик записи, возвращаемый клиенту для повторной попытки
type DraftResponse struct {
	ServiceID     string           `json:"serviceId"`
	Date          types.DateKey    `json:"date"`
	Time          types.TimeString `json:"time"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	WhatsApp      string           `json:"whatsapp"`
	Price         string           `json:"price,omitempty"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
}

// DraftErrorResponse ошибка вместе с сохраненным черновиком
type DraftErrorResponse struct {
	Error string         `json:"error"`
	Draft *DraftResponse `json:"draft"`
}

// FromConfirmed конвертирует результат коммита в ответ
func FromConfirmed(resp *createBooking.Response) *ConfirmationResponse {
	if resp == nil || resp.Appointment == nil {
		return nil
	}
	a := resp.Appointment
	return &ConfirmationResponse{
		Name:             a.CustomerName,
		Date:             a.DateKey,
		Time:             a.TimeSlot,
		ServiceTitle:     a.ServiceTitle,
		WhatsApp:         a.CustomerWhatsApp,
		CalendarEventURL: a.CalendarEventURL,
		WhatsAppURL:      a.WhatsAppURL,
		Created:          resp.Created,
	}
}

// FromDraft конвертирует черновик в ответ
func FromDraft(d domain.AppointmentDraft) *DraftResponse {
	return &DraftResponse{
		ServiceID:     d.ServiceID,
		Date:          d.Date,
		Time:          d.Time,
		Name:          d.Contact.Name,
		Email:         d.Contact.Email,
		WhatsApp:      d.Contact.WhatsApp,
		Price:         d.Price,
		PaymentMethod: d.PaymentMethod,
	}
}
