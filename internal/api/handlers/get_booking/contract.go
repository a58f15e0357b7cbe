package get_booking

import (
	"context"

	"github.com/m04kA/consultation-booking/internal/service/bookings/models"
	"github.com/m04kA/consultation-booking/pkg/types"
)

type BookingService interface {
	Get(ctx context.Context, date types.DateKey, slot types.TimeString) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
