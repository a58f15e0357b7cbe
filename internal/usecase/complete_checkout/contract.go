package complete_checkout

import (
	"context"
	"time"

	checkoutRepo "github.com/m04kA/consultation-booking/internal/infra/storage/checkout"
	"github.com/m04kA/consultation-booking/internal/usecase/create_booking"
)

// HandoffRepository интерфейс хранилища черновиков на время оплаты
type HandoffRepository interface {
	Consume(ctx context.Context, token string) (*checkoutRepo.Handoff, error)
	Restore(ctx context.Context, token string, h *checkoutRepo.Handoff) error
}

// PaymentVerifier интерфейс проверки статуса платежной сессии
type PaymentVerifier interface {
	CheckoutPaid(ctx context.Context, sessionID string) (bool, error)
}

// BookingCommitter интерфейс фиксации бронирования
type BookingCommitter interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
