package get_availability

import (
	"context"

	"github.com/m04kA/consultation-booking/internal/service/availability/models"
	"github.com/m04kA/consultation-booking/pkg/types"
)

type AvailabilityService interface {
	GetSettings(ctx context.Context) (*models.SettingsResponse, error)
	GetDate(ctx context.Context, date types.DateKey) (*models.DateAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
