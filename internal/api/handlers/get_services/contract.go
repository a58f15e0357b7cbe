package get_services

import (
	"context"

	"github.com/m04kA/consultation-booking/internal/service/prices/models"
)

type PriceService interface {
	ListServices(ctx context.Context) (*models.ServicesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
