package get_available_slots

import (
	"context"
	"fmt"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Прошедшие даты не отклоняются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем шаблон и переопределения
	settings, err := uc.availabilityRepo.Load(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load availability: %v", err)
		return nil, fmt.Errorf("%w: failed to load availability: %v", ErrInternal, err)
	}

	// 3. Загружаем журнал бронирований
	ledger, err := uc.bookingRepo.List(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 4. Вычисляем свободные слоты
	effective, err := resolveSlots(req.Date, settings.Weekly, settings.Overrides, ledger)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to resolve date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	uc.logger.Info("GetAvailableSlots: date=%s source=%s free=%d", req.Date, effective.Source, len(effective.Slots))

	return &Response{
		Date:   req.Date,
		Source: effective.Source,
		Slots:  effective.Slots,
	}, nil
}
