package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/service/availability/models"
	"github.com/m04kA/consultation-booking/pkg/debounce"
	"github.com/m04kA/consultation-booking/pkg/types"
)

// Service сервис управления расписанием консультаций.
// Держит состояние в памяти и сериализует изменения мьютексом.
type Service struct {
	repo   AvailabilityRepository
	saved  *debounce.Debouncer
	logger Logger

	mu     sync.Mutex
	state  domain.AvailabilitySettings
	loaded bool
	dirty  bool // в памяти есть несохраненные изменения
}

// NewService создает новый экземпляр сервиса.
// saveNoticeDelay окно, в котором серия сохранений дает одно уведомление.
func NewService(repo AvailabilityRepository, saveNoticeDelay time.Duration, logger Logger) *Service {
	s := &Service{
		repo:   repo,
		logger: logger,
		state:  domain.AvailabilitySettings{Weekly: domain.WeeklyTemplate{}, Overrides: domain.DateOverrides{}},
	}
	s.saved = debounce.New(saveNoticeDelay, func() {
		logger.Info("Availability: settings saved")
	})
	return s
}

// Init загружает состояние из хранилища
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked(ctx)
}

// Watch обновляет состояние при записи другим экземпляром. Блокирует до отмены ctx.
func (s *Service) Watch(ctx context.Context) error {
	return s.repo.Watch(ctx, func(settings domain.AvailabilitySettings) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.dirty {
			return
		}
		s.state = settings.Clone()
		s.loaded = true
		s.logger.Info("Availability: settings refreshed from store")
	})
}

// Close останавливает отложенное уведомление
func (s *Service) Close() {
	s.saved.Stop()
}

// GetSettings возвращает недельный шаблон и переопределения
func (s *Service) GetSettings(ctx context.Context) (*models.SettingsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return models.FromSettings(s.state, true), nil
}

// Load возвращает копию действующих настроек для расчета свободных слотов.
// Несохраненные изменения в памяти имеют приоритет над хранилищем.
func (s *Service) Load(ctx context.Context) (domain.AvailabilitySettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.reloadLocked(ctx); err != nil {
			return domain.AvailabilitySettings{}, err
		}
	} else {
		s.refreshLocked(ctx)
	}
	return s.state.Clone(), nil
}

// GetDate возвращает эффективную доступность даты (без учета бронирований)
func (s *Service) GetDate(ctx context.Context, date types.DateKey) (*models.DateAvailabilityResponse, error) {
	if _, err := types.ParseDateKey(date.String()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	eff, err := domain.ResolveEffective(date, s.state.Weekly, s.state.Overrides)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return models.FromEffective(date, eff, true), nil
}

// ToggleRecurring переключает слот в шаблоне дня недели.
// При ErrPersistence ответ тоже возвращается: изменение уже действует в памяти.
func (s *Service) ToggleRecurring(ctx context.Context, req *models.ToggleRecurringRequest) (*models.SettingsResponse, error) {
	// 1. Валидация
	if req.Day < 0 || req.Day > 6 {
		return nil, fmt.Errorf("%w: day must be between 0 (Monday) and 6 (Sunday)", ErrInvalidInput)
	}
	if !domain.IsCatalogSlot(req.Slot) {
		return nil, fmt.Errorf("%w: slot %q is not a consultation slot", ErrInvalidInput, req.Slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 2. Перечитываем состояние, чтобы не затереть чужие изменения
	s.refreshLocked(ctx)

	// 3. Переключаем слот; день без настроек не получает пустой записи
	_, configured := s.state.Weekly[req.Day]
	slots := domain.ToggleSlot(s.state.Weekly[req.Day], req.Slot)
	if len(slots) == 0 && !configured {
		delete(s.state.Weekly, req.Day)
	} else {
		s.state.Weekly[req.Day] = slots
	}
	s.logger.Info("Availability: toggled recurring day=%d slot=%s", req.Day, req.Slot)

	// 4. Сохраняем весь шаблон
	if err := s.persistLocked(ctx, true, false); err != nil {
		return models.FromSettings(s.state, false), err
	}
	return models.FromSettings(s.state, true), nil
}

// ToggleDate переключает слот на дату.
// Если переопределения нет, оно создается из текущей эффективной доступности.
func (s *Service) ToggleDate(ctx context.Context, req *models.ToggleDateRequest) (*models.DateAvailabilityResponse, error) {
	// 1. Валидация
	if _, err := types.ParseDateKey(req.Date.String()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !domain.IsCatalogSlot(req.Slot) {
		return nil, fmt.Errorf("%w: slot %q is not a consultation slot", ErrInvalidInput, req.Slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked(ctx)

	// 2. Исходный набор: переопределение, иначе шаблон, иначе пусто
	eff, err := domain.ResolveEffective(req.Date, s.state.Weekly, s.state.Overrides)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Переключаем слот
	s.state.Overrides[req.Date] = domain.ToggleSlot(eff.Slots, req.Slot)
	s.logger.Info("Availability: toggled date=%s slot=%s", req.Date, req.Slot)

	result := domain.EffectiveAvailability{Source: domain.SourceOverride, Slots: s.state.Overrides[req.Date]}

	// 4. Сохраняем все переопределения
	if err := s.persistLocked(ctx, false, true); err != nil {
		return models.FromEffective(req.Date, result, false), err
	}
	return models.FromEffective(req.Date, result, true), nil
}

// ClearDate удаляет переопределение даты, дата снова следует шаблону
func (s *Service) ClearDate(ctx context.Context, date types.DateKey) (*models.DateAvailabilityResponse, error) {
	if _, err := types.ParseDateKey(date.String()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked(ctx)

	delete(s.state.Overrides, date)
	eff, err := domain.ResolveEffective(date, s.state.Weekly, s.state.Overrides)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.logger.Info("Availability: cleared override for date=%s", date)

	if err := s.persistLocked(ctx, false, true); err != nil {
		return models.FromEffective(date, eff, false), err
	}
	return models.FromEffective(date, eff, true), nil
}

func (s *Service) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.reloadLocked(ctx)
}

func (s *Service) reloadLocked(ctx context.Context) error {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error("Availability: failed to load settings: %v", err)
		return fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}
	s.state = settings.Clone()
	s.loaded = true
	return nil
}

// persistLocked записывает измененные документы.
// После неудачной записи следующая сохраняет оба документа.
func (s *Service) persistLocked(ctx context.Context, weekly, overrides bool) error {
	if s.dirty {
		weekly, overrides = true, true
	}
	if weekly {
		if err := s.repo.SaveWeekly(ctx, s.state.Weekly); err != nil {
			s.dirty = true
			s.logger.Error("Availability: failed to save recurring template: %v", err)
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}
	if overrides {
		if err := s.repo.SaveOverrides(ctx, s.state.Overrides); err != nil {
			s.dirty = true
			s.logger.Error("Availability: failed to save date overrides: %v", err)
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}
	s.dirty = false
	s.saved.Trigger()
	return nil
}

// refreshLocked перечитывает состояние; при сбое или несохраненных изменениях остается текущее в памяти
func (s *Service) refreshLocked(ctx context.Context) {
	if s.dirty {
		return
	}
	if err := s.reloadLocked(ctx); err != nil {
		s.logger.Warn("Availability: using in-memory settings: %v", err)
	}
}
