package process_payment_event

import (
	"context"

	checkoutRepo "github.com/m04kA/consultation-booking/internal/infra/storage/checkout"
	"github.com/m04kA/consultation-booking/internal/integrations/stripecheckout"
	"github.com/m04kA/consultation-booking/internal/usecase/create_booking"
)

// EventParser интерфейс проверки подписи и разбора события провайдера
type EventParser interface {
	ParseEvent(payload []byte, signatureHeader string) (*stripecheckout.PaymentEvent, error)
}

// HandoffRepository интерфейс хранилища черновиков на время оплаты.
// Оплаченный черновик не удаляется: его забирает возврат клиента.
type HandoffRepository interface {
	Get(ctx context.Context, token string) (*checkoutRepo.Handoff, error)
	MarkCommitted(ctx context.Context, token string) error
	Consume(ctx context.Context, token string) (*checkoutRepo.Handoff, error)
}

// BookingCommitter интерфейс фиксации бронирования
type BookingCommitter interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
