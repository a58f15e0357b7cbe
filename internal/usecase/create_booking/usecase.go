package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/consultation-booking/internal/domain"
	bookingRepo "github.com/m04kA/consultation-booking/internal/infra/storage/booking"
	"github.com/m04kA/consultation-booking/pkg/metrics"
)

// UseCase use case фиксации бронирования в журнале
type UseCase struct {
	bookingRepo      BookingRepository
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
	consultantNumber string
	location         *time.Location
}

// NewUseCase создает новый экземпляр use case.
// consultantNumber номер консультанта для ссылки WhatsApp, loc локальная зона слотов.
func NewUseCase(
	bookingRepo BookingRepository,
	metrics Metrics,
	consultantNumber string,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{
		bookingRepo:      bookingRepo,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		consultantNumber: consultantNumber,
		location:         loc,
	}
}

// Execute проверяет конфликт и добавляет бронирование.
// Повтор с тем же клиентом на тот же слот считается успехом без изменений.
// Доступность слота здесь не проверяется, только занятость.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	draft := req.Draft

	uc.logger.Info("CreateBooking: service=%s, date=%s, time=%s", draft.ServiceID, draft.Date, draft.Time)

	// 2. Получаем консультацию из каталога
	option, ok := domain.FindConsultation(draft.ServiceID)
	if !ok {
		uc.logger.Warn("CreateBooking: service id=%s not found", draft.ServiceID)
		return nil, ErrServiceNotFound
	}

	now := uc.timeProvider.Now()
	booking := domain.Booking{
		CustomerName: draft.Contact.Name,
		DateKey:      draft.Date,
		TimeSlot:     draft.Time,
		ServiceTitle: option.Title,
		CreatedAt:    &now,
	}

	// 3. Перечитываем журнал, проверяем конфликт и добавляем запись (с повтором при гонке)
	var existing *domain.Booking
	_, err := uc.bookingRepo.Update(ctx, func(ledger domain.Ledger) (domain.Ledger, error) {
		existing = nil
		if found, ok := ledger.Find(booking.DateKey, booking.TimeSlot); ok {
			if found.SameCustomer(booking.CustomerName) {
				existing = found
				return nil, bookingRepo.ErrNoChange
			}
			return nil, ErrSlotTaken
		}
		next := make(domain.Ledger, 0, len(ledger)+1)
		next = append(next, ledger...)
		return append(next, booking), nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			uc.metrics.IncBookingCommit(metrics.OutcomeConflict)
			uc.logger.Warn("CreateBooking: slot date=%s time=%s already taken", booking.DateKey, booking.TimeSlot)
			return nil, ErrSlotTaken
		}
		uc.metrics.IncBookingCommit(metrics.OutcomeFailed)
		uc.logger.Error("CreateBooking: failed to update ledger: %v", err)
		return nil, fmt.Errorf("%w: failed to update ledger: %v", ErrInternal, err)
	}

	created := existing == nil
	if created {
		uc.metrics.IncBookingCommit(metrics.OutcomeCommitted)
		uc.logger.Info("CreateBooking: booked date=%s time=%s", booking.DateKey, booking.TimeSlot)
	} else {
		booking = *existing
		uc.metrics.IncBookingCommit(metrics.OutcomeIdempotent)
		uc.logger.Info("CreateBooking: booking date=%s time=%s already recorded", booking.DateKey, booking.TimeSlot)
	}

	// 4. Формируем подтверждение
	appointment, err := domain.NewConfirmedAppointment(booking, draft.Contact.WhatsApp, uc.consultantNumber, uc.location)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to build confirmation: %v", err)
		return nil, fmt.Errorf("%w: failed to build confirmation: %v", ErrInternal, err)
	}

	return &Response{Booking: booking, Appointment: appointment, Created: created}, nil
}
