package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/consultation-booking/internal/domain"
	bookingRepo "github.com/m04kA/consultation-booking/internal/infra/storage/booking"
	"github.com/m04kA/consultation-booking/internal/service/bookings/models"
	"github.com/m04kA/consultation-booking/pkg/types"
)

// Service сервис администрирования бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// List возвращает страницу бронирований с поиском и сортировкой
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	// 1. Валидация и значения по умолчанию
	sortBy := strings.ToLower(strings.TrimSpace(req.SortBy))
	if sortBy == "" {
		sortBy = models.SortByDate
	}
	if sortBy != models.SortByName && sortBy != models.SortByDate && sortBy != models.SortByService {
		return nil, fmt.Errorf("%w: sort must be one of name, date, service", ErrInvalidInput)
	}
	direction := strings.ToLower(strings.TrimSpace(req.Direction))
	if direction == "" {
		direction = models.DirectionDesc
	}
	if direction != models.DirectionAsc && direction != models.DirectionDesc {
		return nil, fmt.Errorf("%w: direction must be asc or desc", ErrInvalidInput)
	}
	page := req.Page
	if page < 1 {
		page = 1
	}

	// 2. Читаем журнал
	ledger, err := s.bookingRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	// 3. Фильтруем, сортируем, режем на страницы
	filtered := filterBookings(ledger, req.Search)
	sortBookings(filtered, sortBy, direction == models.DirectionAsc)

	total := len(filtered)
	totalPages := (total + domain.BookingsPageSize - 1) / domain.BookingsPageSize
	start := (page - 1) * domain.BookingsPageSize
	end := start + domain.BookingsPageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]models.BookingResponse, 0, end-start)
	for _, b := range filtered[start:end] {
		items = append(items, models.FromDomainBooking(b))
	}

	return &models.BookingListResponse{
		Bookings:   items,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

// Get возвращает бронирование на (дата, слот)
func (s *Service) Get(ctx context.Context, date types.DateKey, slot types.TimeString) (*models.BookingResponse, error) {
	if err := validateKey(date, slot); err != nil {
		return nil, err
	}

	ledger, err := s.bookingRepo.List(ctx)
	if err != nil {
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	b, ok := ledger.Find(date, slot)
	if !ok {
		return nil, ErrBookingNotFound
	}
	resp := models.FromDomainBooking(*b)
	return &resp, nil
}

// Cancel удаляет бронирование, слот снова становится свободным
func (s *Service) Cancel(ctx context.Context, date types.DateKey, slot types.TimeString) error {
	if err := validateKey(date, slot); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, date, slot); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking date=%s time=%s not found", date, slot)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error: %v", err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking date=%s time=%s cancelled", date, slot)
	return nil
}

func validateKey(date types.DateKey, slot types.TimeString) error {
	if _, err := types.ParseDateKey(date.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := slot.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func filterBookings(ledger domain.Ledger, search string) []domain.Booking {
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]domain.Booking, 0, len(ledger))
	for _, b := range ledger {
		if term == "" ||
			strings.Contains(strings.ToLower(b.CustomerName), term) ||
			strings.Contains(b.DateKey.String(), term) ||
			strings.Contains(strings.ToLower(b.ServiceTitle), term) {
			out = append(out, b)
		}
	}
	return out
}

func sortBookings(list []domain.Booking, sortBy string, asc bool) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !asc {
			a, b = b, a
		}
		switch sortBy {
		case models.SortByName:
			return strings.ToLower(a.CustomerName) < strings.ToLower(b.CustomerName)
		case models.SortByService:
			return strings.ToLower(a.ServiceTitle) < strings.ToLower(b.ServiceTitle)
		default:
			// "YYYY-MM-DD" и "HH:MM" сравниваются как строки в хронологическом порядке
			if a.DateKey != b.DateKey {
				return a.DateKey < b.DateKey
			}
			return a.TimeSlot < b.TimeSlot
		}
	})
}
