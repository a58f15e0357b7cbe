package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда консультация не найдена в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSlotTaken возвращается, когда слот уже занят другим клиентом
	ErrSlotTaken = errors.New("create_booking: this slot has just been booked by someone else, please pick another time")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
