package get_available_slots

import (
	"context"

	"github.com/m04kA/consultation-booking/internal/domain"
)

// AvailabilityRepository источник недельного шаблона и переопределений
type AvailabilityRepository interface {
	// Load возвращает актуальные настройки либо последний известный снимок при сбое хранилища
	Load(ctx context.Context) (domain.AvailabilitySettings, error)
}

// BookingRepository интерфейс журнала подтвержденных бронирований
type BookingRepository interface {
	List(ctx context.Context) (domain.Ledger, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
