package stripecheckout

import "errors"

var (
	// ErrNotConfigured возвращается, если не задан секретный ключ
	ErrNotConfigured = errors.New("stripe client: secret key is not configured")

	// ErrProvider возвращается при ошибке обращения к Stripe
	ErrProvider = errors.New("stripe client: provider error")

	// ErrInvalidSignature возвращается при неверной подписи вебхука
	ErrInvalidSignature = errors.New("stripe client: invalid webhook signature")

	// ErrUnsupportedEvent возвращается для событий, которые сервис не обрабатывает
	ErrUnsupportedEvent = errors.New("stripe client: unsupported event type")

	// ErrInvalidPayload возвращается, если объект события не удалось разобрать
	ErrInvalidPayload = errors.New("stripe client: invalid event payload")
)
