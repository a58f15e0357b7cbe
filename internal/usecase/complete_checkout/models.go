package complete_checkout

import (
	"time"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/usecase/create_booking"
)

// Результат возврата со страницы оплаты
const (
	PaymentSuccess = "success"
	PaymentCancel  = "cancel"
)

// NextStep шаг мастера записи, на который возвращается клиент
type NextStep string

const (
	NextStepPayment   NextStep = "payment"
	NextStepConfirmed NextStep = "confirmed"
)

// Options параметры проверки из конфигурации
type Options struct {
	VerifyPayment bool          // Спрашивать провайдера о статусе сессии
	HandoffTTL    time.Duration // 0 без ограничения
}

// Request модель запроса
type Request struct {
	Token     string
	Payment   string // success | cancel
	SessionID string // из адреса возврата, используется если в черновике сессии нет
}

// Response модель ответа
type Response struct {
	NextStep NextStep
	Draft    domain.AppointmentDraft
	Booking  *create_booking.Response // заполнено при NextStepConfirmed
}
