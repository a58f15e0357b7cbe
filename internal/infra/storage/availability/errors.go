package availability

import "errors"

var (
	// ErrRead возвращается, когда хранилище недоступно и нет последнего известного состояния
	ErrRead = errors.New("availability.repository: failed to read availability")

	// ErrWrite возвращается при ошибке записи
	ErrWrite = errors.New("availability.repository: failed to write availability")

	// ErrEncode возвращается при ошибке сериализации
	ErrEncode = errors.New("availability.repository: failed to encode availability")
)
