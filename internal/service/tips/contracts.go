package tips

import (
	"context"

	"github.com/m04kA/consultation-booking/internal/domain"
)

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	List(ctx context.Context) (domain.Ledger, error)
}

// TextGenerator интерфейс генеративной модели
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
