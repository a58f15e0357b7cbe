package prices

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/service/prices/models"
	"github.com/m04kA/consultation-booking/pkg/logger"
)

type mockRepo struct {
	stored  domain.Prices
	getErr  error
	saveErr error
}

func (m *mockRepo) Get(ctx context.Context) (domain.Prices, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := domain.Prices{}
	for k, v := range m.stored {
		out[k] = v
	}
	return out, nil
}

func (m *mockRepo) Save(ctx context.Context, prices domain.Prices) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stored = prices
	return nil
}

func TestService_ListServices(t *testing.T) {
	repo := &mockRepo{stored: domain.Prices{"visaExtensionPrice": "45", "integrationCoursePrice": "garbage"}}
	s := NewService(repo, logger.NewNop())

	resp, err := s.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Services, 4)

	byID := map[string]string{}
	for _, svc := range resp.Services {
		byID[svc.ID] = svc.Price
	}
	assert.Equal(t, "45", byID["visa_extension"])
	assert.Equal(t, "30", byID["integration_course"])
	assert.Equal(t, "50", byID["degree_recognition"])
}

func TestService_ListServices_StoreDown(t *testing.T) {
	s := NewService(&mockRepo{getErr: errors.New("down")}, logger.NewNop())

	resp, err := s.ListServices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "50", resp.Services[0].Price)
}

func TestService_EffectivePrice(t *testing.T) {
	s := NewService(&mockRepo{stored: domain.Prices{"visaExtensionPrice": "55.5"}}, logger.NewNop())
	option, ok := domain.FindConsultation("visa_extension")
	require.True(t, ok)

	price, err := s.EffectivePrice(context.Background(), option)
	require.NoError(t, err)
	assert.Equal(t, "55.5", price)

	s = NewService(&mockRepo{getErr: errors.New("down")}, logger.NewNop())
	_, err = s.EffectivePrice(context.Background(), option)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_UpdateAndReset(t *testing.T) {
	repo := &mockRepo{}
	s := NewService(repo, logger.NewNop())

	resp, err := s.Update(context.Background(), &models.UpdatePricesRequest{Prices: map[string]string{"visaExtensionPrice": " 60 "}})
	require.NoError(t, err)
	assert.Equal(t, "60", resp.Prices["visaExtensionPrice"])
	assert.Equal(t, "50", resp.Prices["degreeRecognitionPrice"])
	assert.Equal(t, "60", repo.stored["visaExtensionPrice"])

	resp, err = s.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPrices(), resp.Prices)
	assert.Equal(t, "40", repo.stored["visaExtensionPrice"])
}

func TestService_Update_Invalid(t *testing.T) {
	s := NewService(&mockRepo{}, logger.NewNop())

	_, err := s.Update(context.Background(), &models.UpdatePricesRequest{Prices: map[string]string{"unknownPrice": "10"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Update(context.Background(), &models.UpdatePricesRequest{Prices: map[string]string{"visaExtensionPrice": "-5"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Update(context.Background(), &models.UpdatePricesRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update_SaveFailure(t *testing.T) {
	s := NewService(&mockRepo{saveErr: errors.New("down")}, logger.NewNop())
	_, err := s.Update(context.Background(), &models.UpdatePricesRequest{Prices: map[string]string{"visaExtensionPrice": "60"}})
	assert.ErrorIs(t, err, ErrInternal)
}
