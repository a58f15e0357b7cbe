package clear_date_override

import (
	"context"

	"github.com/m04kA/consultation-booking/internal/service/availability/models"
	"github.com/m04kA/consultation-booking/pkg/types"
)

type AvailabilityService interface {
	ClearDate(ctx context.Context, date types.DateKey) (*models.DateAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
