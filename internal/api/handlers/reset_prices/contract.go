package reset_prices

import (
	"context"

	"github.com/m04kA/consultation-booking/internal/service/prices/models"
)

type PriceService interface {
	Reset(ctx context.Context) (*models.PricesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
