package tips

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/integrations/gemini"
	"github.com/m04kA/consultation-booking/pkg/logger"
)

type mockRepo struct {
	ledger domain.Ledger
	err    error
}

func (m *mockRepo) List(ctx context.Context) (domain.Ledger, error) {
	return m.ledger, m.err
}

type mockGenerator struct {
	prompt string
	text   string
	err    error
}

func (m *mockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.prompt = prompt
	return m.text, m.err
}

func ledger() *mockRepo {
	return &mockRepo{ledger: domain.Ledger{
		{CustomerName: "Anna", DateKey: "2025-03-10", TimeSlot: "09:00", ServiceTitle: "Visa & Residence Permit"},
	}}
}

func TestService_Generate(t *testing.T) {
	gen := &mockGenerator{text: "Welcome, Anna!"}
	s := NewService(ledger(), gen, logger.NewNop())

	tips, err := s.Generate(context.Background(), "2025-03-10", "09:00")
	require.NoError(t, err)
	assert.Equal(t, "Welcome, Anna!", tips.Text)
	assert.Equal(t, "Anna", tips.Name)
	assert.Contains(t, gen.prompt, `client named Anna who has booked a "Visa & Residence Permit" consultation`)
	assert.Contains(t, gen.prompt, "on 2025-03-10 at 09:00")
}

func TestService_Generate_Errors(t *testing.T) {
	t.Run("booking not found", func(t *testing.T) {
		s := NewService(ledger(), &mockGenerator{}, logger.NewNop())
		_, err := s.Generate(context.Background(), "2025-03-10", "10:00")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("not configured", func(t *testing.T) {
		s := NewService(ledger(), &mockGenerator{err: gemini.ErrNotConfigured}, logger.NewNop())
		_, err := s.Generate(context.Background(), "2025-03-10", "09:00")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("generation failure", func(t *testing.T) {
		s := NewService(ledger(), &mockGenerator{err: errors.New("quota")}, logger.NewNop())
		_, err := s.Generate(context.Background(), "2025-03-10", "09:00")
		assert.ErrorIs(t, err, ErrGeneration)
	})

	t.Run("invalid input", func(t *testing.T) {
		s := NewService(ledger(), &mockGenerator{}, logger.NewNop())
		_, err := s.Generate(context.Background(), "2025-3-10", "09:00")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
