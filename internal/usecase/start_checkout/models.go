package start_checkout

import (
	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/usecase/create_booking"
)

// Outcome итог запуска оплаты
type Outcome string

const (
	// OutcomeRedirect клиента нужно отправить на страницу оплаты
	OutcomeRedirect Outcome = "redirect"
	// OutcomeConfirmed оплата прошла сразу, бронирование зафиксировано
	OutcomeConfirmed Outcome = "confirmed"
)

// Options параметры оплаты из конфигурации
type Options struct {
	Currency  string // ISO код валюты, например "eur"
	ReturnURL string // Адрес возврата клиента после оплаты
}

// Request модель запроса
type Request struct {
	Draft domain.AppointmentDraft
}

// Response модель ответа
type Response struct {
	Outcome     Outcome
	Token       string
	RedirectURL string
	Price       string
	Booking     *create_booking.Response // заполнено при OutcomeConfirmed
}
