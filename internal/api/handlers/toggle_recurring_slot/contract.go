package toggle_recurring_slot

import (
	"context"

	"github.com/m04kA/consultation-booking/internal/service/availability/models"
)

type AvailabilityService interface {
	ToggleRecurring(ctx context.Context, req *models.ToggleRecurringRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
