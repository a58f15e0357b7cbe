package availability

import (
	"context"

	"github.com/m04kA/consultation-booking/internal/domain"
)

// AvailabilityRepository интерфейс хранилища шаблона и переопределений
type AvailabilityRepository interface {
	Load(ctx context.Context) (domain.AvailabilitySettings, error)
	SaveWeekly(ctx context.Context, weekly domain.WeeklyTemplate) error
	SaveOverrides(ctx context.Context, overrides domain.DateOverrides) error
	Watch(ctx context.Context, onChange func(domain.AvailabilitySettings)) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
