package prices

import (
	"context"

	"github.com/m04kA/consultation-booking/internal/domain"
)

// PriceRepository интерфейс хранилища цен
type PriceRepository interface {
	Get(ctx context.Context) (domain.Prices, error)
	Save(ctx context.Context, prices domain.Prices) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
