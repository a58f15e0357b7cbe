package prices

import "errors"

var (
	// ErrInvalidInput возвращается при неизвестном ключе или некорректной цене
	ErrInvalidInput = errors.New("prices: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("prices: internal error")
)
