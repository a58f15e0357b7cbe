package start_checkout

import "errors"

var (
	// ErrServiceNotFound возвращается, когда консультация не найдена в каталоге
	ErrServiceNotFound = errors.New("start_checkout: service not found")

	// ErrPaymentConfiguration возвращается, если у консультации нет настоящего платежного продукта
	ErrPaymentConfiguration = errors.New("start_checkout: payment is not configured for this consultation, please contact support")

	// ErrSlotNotAvailable возвращается, когда выбранный слот больше не предлагается
	ErrSlotNotAvailable = errors.New("start_checkout: selected time is no longer available")

	// ErrPaymentDeclined возвращается, когда провайдер отклонил оплату
	ErrPaymentDeclined = errors.New("start_checkout: payment was declined")

	// ErrPaymentProvider возвращается при ошибке платежного провайдера
	ErrPaymentProvider = errors.New("start_checkout: payment provider error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("start_checkout: internal error")
)
