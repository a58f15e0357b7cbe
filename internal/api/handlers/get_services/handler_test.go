package get_services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
	pricesRepo "github.com/m04kA/consultation-booking/internal/infra/storage/prices"
	"github.com/m04kA/consultation-booking/internal/service/prices"
	"github.com/m04kA/consultation-booking/pkg/logger"
)

func TestHandle_ReturnsCatalogWithPrices(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()
	repo := pricesRepo.NewRepository(documents.NewMemoryStore(), log)
	require.NoError(t, repo.Save(ctx, domain.Prices{"visaExtensionPrice": "45"}))

	h := NewHandler(prices.NewService(repo, log), log)
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"visa_extension"`)
	assert.Contains(t, w.Body.String(), `"price":"45"`)
	assert.Contains(t, w.Body.String(), `"id":"degree_recognition"`)
}
