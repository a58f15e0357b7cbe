package welcome_tips

import (
	"context"

	"github.com/m04kA/consultation-booking/internal/service/tips"
	"github.com/m04kA/consultation-booking/pkg/types"
)

type TipsService interface {
	Generate(ctx context.Context, date types.DateKey, slot types.TimeString) (*tips.WelcomeTips, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
