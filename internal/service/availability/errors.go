package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном дне недели, дате или слоте
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrPersistence возвращается, когда изменение применено в памяти, но не сохранено
	ErrPersistence = errors.New("availability: changes are applied but could not be saved")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
