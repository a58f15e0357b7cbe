package tips

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("tips: booking not found")

	// ErrInvalidInput возвращается при некорректной дате или слоте
	ErrInvalidInput = errors.New("tips: invalid input data")

	// ErrNotConfigured возвращается, если ключ генеративной модели не задан
	ErrNotConfigured = errors.New("tips: API key not configured, please add the Gemini API key to the configuration")

	// ErrGeneration возвращается при ошибке генерации
	ErrGeneration = errors.New("tips: could not generate welcome tips, please try again later")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("tips: internal error")
)
