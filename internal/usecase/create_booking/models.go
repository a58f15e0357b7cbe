package create_booking

import "github.com/m04kA/consultation-booking/internal/domain"

// Request модель запроса на фиксацию бронирования
type Request struct {
	Draft domain.AppointmentDraft
}

// Response модель ответа
type Response struct {
	Booking     domain.Booking
	Appointment *domain.ConfirmedAppointment
	Created     bool // false, если такое же бронирование уже было в журнале
}
