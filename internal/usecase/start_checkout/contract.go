package start_checkout

import (
	"context"
	"time"

	"github.com/m04kA/consultation-booking/internal/domain"
	checkoutRepo "github.com/m04kA/consultation-booking/internal/infra/storage/checkout"
	"github.com/m04kA/consultation-booking/internal/integrations/stripecheckout"
	"github.com/m04kA/consultation-booking/internal/usecase/create_booking"
	"github.com/m04kA/consultation-booking/internal/usecase/get_available_slots"
)

// SlotsResolver интерфейс получения свободных слотов на дату
type SlotsResolver interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// PriceProvider интерфейс получения действующей цены консультации
type PriceProvider interface {
	EffectivePrice(ctx context.Context, option domain.ConsultationOption) (string, error)
}

// HandoffRepository интерфейс хранилища черновиков на время оплаты
type HandoffRepository interface {
	Save(ctx context.Context, token string, h *checkoutRepo.Handoff) error
	AttachSession(ctx context.Context, token, sessionID string) error
	Consume(ctx context.Context, token string) (*checkoutRepo.Handoff, error)
}

// PaymentGateway интерфейс платежного провайдера
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, req *stripecheckout.CheckoutRequest) (*stripecheckout.CheckoutResult, error)
}

// BookingCommitter интерфейс фиксации бронирования
type BookingCommitter interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Metrics счетчики запусков оплаты
type Metrics interface {
	IncCheckout(result string)
}

// TokenGenerator генератор токенов передачи черновика
type TokenGenerator interface {
	NewToken() string
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
