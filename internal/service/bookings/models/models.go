package models

import (
	"time"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/pkg/types"
)

// Поля сортировки
const (
	SortByName    = "name"
	SortByDate    = "date"
	SortByService = "service"
)

// Направления сортировки
const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// Request модели

// ListBookingsRequest запрос списка бронирований для админки
type ListBookingsRequest struct {
	Search    string // подстрока имени, даты или названия консультации
	SortBy    string // name | date | service, по умолчанию date
	Direction string // asc | desc, по умолчанию desc
	Page      int    // с 1
}

// Response модели

// BookingResponse бронирование в ответе
type BookingResponse struct {
	Name              string           `json:"name"`
	Date              types.DateKey    `json:"date"`
	Time              types.TimeString `json:"time"`
	ConsultationTitle string           `json:"consultationTitle"`
	CreatedAt         *time.Time       `json:"createdAt,omitempty"`
}

// BookingListResponse страница бронирований
type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Total      int               `json:"total"`
}

// FromDomainBooking конвертирует доменное бронирование в ответ
func FromDomainBooking(b domain.Booking) BookingResponse {
	return BookingResponse{
		Name:              b.CustomerName,
		Date:              b.DateKey,
		Time:              b.TimeSlot,
		ConsultationTitle: b.ServiceTitle,
		CreatedAt:         b.CreatedAt,
	}
}
