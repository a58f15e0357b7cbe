package bookings

import (
	"context"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/pkg/types"
)

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	List(ctx context.Context) (domain.Ledger, error)
	Delete(ctx context.Context, date types.DateKey, slot types.TimeString) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
