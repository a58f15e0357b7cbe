package toggle_date_slot

import (
	"context"

	"github.com/m04kA/consultation-booking/internal/service/availability/models"
)

type AvailabilityService interface {
	ToggleDate(ctx context.Context, req *models.ToggleDateRequest) (*models.DateAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
