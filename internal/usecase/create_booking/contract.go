package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/consultation-booking/internal/domain"
)

// BookingRepository интерфейс журнала бронирований с обновлением по версии
type BookingRepository interface {
	// Update применяет fn к актуальному журналу; при конкурентной записи fn вызывается повторно
	Update(ctx context.Context, fn func(domain.Ledger) (domain.Ledger, error)) (domain.Ledger, error)
}

// Metrics счетчики исходов фиксации бронирования
type Metrics interface {
	IncBookingCommit(outcome string)
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
