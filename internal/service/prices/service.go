package prices

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/service/prices/models"
)

var priceRegex = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// Service сервис каталога консультаций и цен
type Service struct {
	repo   PriceRepository
	logger Logger

	mu sync.Mutex
}

// NewService создает новый экземпляр сервиса цен
func NewService(repo PriceRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListServices возвращает каталог с действующими ценами.
// При сбое хранилища используются цены по умолчанию.
func (s *Service) ListServices(ctx context.Context) (*models.ServicesResponse, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Warn("ListServices: using default prices: %v", err)
		stored = domain.Prices{}
	}

	catalog := domain.Consultations()
	out := make([]models.ServiceResponse, 0, len(catalog))
	for _, c := range catalog {
		out = append(out, models.ServiceResponse{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			PriceKey:    c.PriceKey,
			Price:       effective(stored, c),
		})
	}
	return &models.ServicesResponse{Services: out}, nil
}

// EffectivePrice возвращает сохраненную цену консультации или цену по умолчанию
func (s *Service) EffectivePrice(ctx context.Context, option domain.ConsultationOption) (string, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("EffectivePrice: repository error: %v", err)
		return "", fmt.Errorf("%w: EffectivePrice - repository error: %v", ErrInternal, err)
	}
	return effective(stored, option), nil
}

// GetPrices возвращает действующие цены всех консультаций
func (s *Service) GetPrices(ctx context.Context) (*models.PricesResponse, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("GetPrices: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetPrices - repository error: %v", ErrInternal, err)
	}
	return &models.PricesResponse{Prices: effectiveAll(stored)}, nil
}

// Update меняет цены по переданным ключам, остальные остаются прежними
func (s *Service) Update(ctx context.Context, req *models.UpdatePricesRequest) (*models.PricesResponse, error) {
	// 1. Валидация
	if len(req.Prices) == 0 {
		return nil, fmt.Errorf("%w: no prices given", ErrInvalidInput)
	}
	known := domain.DefaultPrices()
	clean := make(domain.Prices, len(req.Prices))
	for key, value := range req.Prices {
		if _, ok := known[key]; !ok {
			return nil, fmt.Errorf("%w: unknown price key %q", ErrInvalidInput, key)
		}
		value = strings.TrimSpace(value)
		if !priceRegex.MatchString(value) {
			return nil, fmt.Errorf("%w: price for %q must be a non-negative amount like 40 or 49.50", ErrInvalidInput, key)
		}
		clean[key] = value
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 2. Объединяем с сохраненными
	stored, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}
	merged := effectiveAll(stored)
	for key, value := range clean {
		merged[key] = value
	}

	// 3. Сохраняем
	if err := s.repo.Save(ctx, merged); err != nil {
		s.logger.Error("Update: failed to save prices: %v", err)
		return nil, fmt.Errorf("%w: Update - save error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: prices updated for %d keys", len(clean))
	return &models.PricesResponse{Prices: merged}, nil
}

// Reset возвращает цены по умолчанию
func (s *Service) Reset(ctx context.Context) (*models.PricesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defaults := domain.DefaultPrices()
	if err := s.repo.Save(ctx, defaults); err != nil {
		s.logger.Error("Reset: failed to save prices: %v", err)
		return nil, fmt.Errorf("%w: Reset - save error: %v", ErrInternal, err)
	}
	s.logger.Info("Reset: prices restored to defaults")
	return &models.PricesResponse{Prices: defaults}, nil
}

func effective(stored domain.Prices, option domain.ConsultationOption) string {
	if value, ok := stored[option.PriceKey]; ok && priceRegex.MatchString(strings.TrimSpace(value)) {
		return strings.TrimSpace(value)
	}
	return option.DefaultPrice
}

func effectiveAll(stored domain.Prices) domain.Prices {
	out := make(domain.Prices)
	for _, c := range domain.Consultations() {
		out[c.PriceKey] = effective(stored, c)
	}
	return out
}
