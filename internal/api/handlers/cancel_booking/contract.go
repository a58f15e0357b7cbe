package cancel_booking

import (
	"context"

	"github.com/m04kA/consultation-booking/pkg/types"
)

type BookingService interface {
	Cancel(ctx context.Context, date types.DateKey, slot types.TimeString) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
