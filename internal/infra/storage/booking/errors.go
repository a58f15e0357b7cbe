package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирования на (дата, слот) нет
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrNoChange возвращается из функции обновления, если записывать ничего не нужно
	ErrNoChange = errors.New("booking.repository: no change")

	// ErrTooManyConflicts возвращается, если не удалось применить изменение за отведенное число попыток
	ErrTooManyConflicts = errors.New("booking.repository: too many concurrent updates")

	// ErrRead возвращается при ошибке чтения журнала
	ErrRead = errors.New("booking.repository: failed to read ledger")

	// ErrWrite возвращается при ошибке записи журнала
	ErrWrite = errors.New("booking.repository: failed to write ledger")
)
