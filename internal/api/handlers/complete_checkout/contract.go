package complete_checkout

import (
	"context"

	completeCheckout "github.com/m04kA/consultation-booking/internal/usecase/complete_checkout"
)

type CompleteCheckoutUseCase interface {
	Execute(ctx context.Context, req *completeCheckout.Request) (*completeCheckout.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
