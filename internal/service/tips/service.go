package tips

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/integrations/gemini"
	"github.com/m04kA/consultation-booking/pkg/types"
)

const promptTemplate = `Generate a short, friendly, and personalized welcome message for a client named %s ` +
	`who has booked a "%s" consultation for Germany. The message should be 2-3 sentences. ` +
	`Mention their appointment on %s at %s. Give one quick tip to prepare, like "think about your main questions" ` +
	`or "have your documents ready to discuss". Keep it encouraging.`

// WelcomeTips сгенерированное приветствие для клиента
type WelcomeTips struct {
	Name string           `json:"name"`
	Date types.DateKey    `json:"date"`
	Time types.TimeString `json:"time"`
	Text string           `json:"text"`
}

// Service сервис приветственных сообщений для клиентов
type Service struct {
	bookingRepo BookingRepository
	generator   TextGenerator
	logger      Logger
}

// NewService создает новый экземпляр сервиса
func NewService(bookingRepo BookingRepository, generator TextGenerator, logger Logger) *Service {
	return &Service{bookingRepo: bookingRepo, generator: generator, logger: logger}
}

// Generate создает приветствие для бронирования на (дата, слот)
func (s *Service) Generate(ctx context.Context, date types.DateKey, slot types.TimeString) (*WelcomeTips, error) {
	if _, err := types.ParseDateKey(date.String()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := slot.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ledger, err := s.bookingRepo.List(ctx)
	if err != nil {
		s.logger.Error("Generate: repository error: %v", err)
		return nil, fmt.Errorf("%w: Generate - repository error: %v", ErrInternal, err)
	}
	booking, ok := ledger.Find(date, slot)
	if !ok {
		return nil, ErrBookingNotFound
	}

	text, err := s.generator.GenerateText(ctx, buildPrompt(*booking))
	if err != nil {
		if errors.Is(err, gemini.ErrNotConfigured) {
			s.logger.Warn("Generate: generative model is not configured")
			return nil, ErrNotConfigured
		}
		s.logger.Error("Generate: failed for date=%s time=%s: %v", date, slot, err)
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	return &WelcomeTips{Name: booking.CustomerName, Date: booking.DateKey, Time: booking.TimeSlot, Text: text}, nil
}

func buildPrompt(b domain.Booking) string {
	return fmt.Sprintf(promptTemplate, b.CustomerName, b.ServiceTitle, b.DateKey, b.TimeSlot)
}
