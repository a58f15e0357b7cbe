package complete_checkout

import (
	"errors"

	"github.com/m04kA/consultation-booking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных параметрах возврата
	ErrInvalidInput = errors.New("complete_checkout: invalid input data")

	// ErrHandoffNotFound возвращается, когда черновик уже использован или не существовал
	ErrHandoffNotFound = errors.New("complete_checkout: appointment details not found, please start the booking again")

	// ErrHandoffCorrupt возвращается, когда сохраненный черновик не читается
	ErrHandoffCorrupt = errors.New("complete_checkout: saved appointment details are unreadable, please start the booking again")

	// ErrHandoffExpired возвращается, когда черновик старше допустимого срока
	ErrHandoffExpired = errors.New("complete_checkout: appointment details expired, please start the booking again")

	// ErrPaymentNotCompleted возвращается, когда провайдер не подтвердил оплату
	ErrPaymentNotCompleted = errors.New("complete_checkout: payment has not been completed")

	// ErrPaymentProvider возвращается при ошибке проверки оплаты
	ErrPaymentProvider = errors.New("complete_checkout: payment provider error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_checkout: internal error")
)

// DraftPreservedError ошибка, после которой черновик сохранен и может быть показан клиенту
type DraftPreservedError struct {
	Cause error
	Draft domain.AppointmentDraft
}

func (e *DraftPreservedError) Error() string {
	return e.Cause.Error()
}

func (e *DraftPreservedError) Unwrap() error {
	return e.Cause
}
