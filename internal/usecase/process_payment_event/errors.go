package process_payment_event

import "errors"

var (
	// ErrInvalidSignature возвращается, если подпись события не сошлась
	ErrInvalidSignature = errors.New("process_payment_event: invalid signature")

	// ErrInvalidPayload возвращается, если событие не удалось разобрать
	ErrInvalidPayload = errors.New("process_payment_event: invalid payload")

	// ErrNotConfigured возвращается, если секрет вебхука не задан
	ErrNotConfigured = errors.New("process_payment_event: webhook is not configured")

	// ErrInternal возвращается при внутренних ошибках usecase; провайдер повторит доставку
	ErrInternal = errors.New("process_payment_event: internal error")
)
