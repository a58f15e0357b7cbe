package get_bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/consultation-booking/internal/domain"
	bookingRepo "github.com/m04kA/consultation-booking/internal/infra/storage/booking"
	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
	"github.com/m04kA/consultation-booking/internal/service/bookings"
	"github.com/m04kA/consultation-booking/internal/service/bookings/models"
	"github.com/m04kA/consultation-booking/pkg/logger"
	"github.com/m04kA/consultation-booking/pkg/types"
)

func newHandler(t *testing.T, count int) *Handler {
	t.Helper()
	log := logger.NewNop()
	repo := bookingRepo.NewRepository(documents.NewMemoryStore(), log)
	_, err := repo.Update(context.Background(), func(domain.Ledger) (domain.Ledger, error) {
		ledger := make(domain.Ledger, 0, count)
		for i := 0; i < count; i++ {
			ledger = append(ledger, domain.Booking{
				CustomerName: fmt.Sprintf("Customer %02d", i),
				DateKey:      types.DateKey(fmt.Sprintf("2025-04-%02d", i+1)),
				TimeSlot:     "09:00",
				ServiceTitle: "Visa & Residence Permit",
			})
		}
		return ledger, nil
	})
	require.NoError(t, err)
	return NewHandler(bookings.NewService(repo, log), log)
}

func serve(h *Handler, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings"+query, nil))
	return w
}

func TestHandle_Paginates(t *testing.T) {
	h := newHandler(t, 12)

	w := serve(h, "?page=2")
	require.Equal(t, http.StatusOK, w.Code)

	var body models.BookingListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 2, body.TotalPages)
	assert.Equal(t, 12, body.Total)
	require.Len(t, body.Bookings, 2)
	// По умолчанию новые даты первыми
	assert.Equal(t, types.DateKey("2025-04-02"), body.Bookings[0].Date)
}

func TestHandle_SearchAndSort(t *testing.T) {
	h := newHandler(t, 12)

	w := serve(h, "?search=customer%2011&sort=name&direction=asc")
	require.Equal(t, http.StatusOK, w.Code)

	var body models.BookingListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Bookings, 1)
	assert.Equal(t, "Customer 11", body.Bookings[0].Name)
}

func TestHandle_Rejects(t *testing.T) {
	h := newHandler(t, 1)

	assert.Equal(t, http.StatusBadRequest, serve(h, "?page=zero").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "?page=0").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "?sort=price").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "?direction=up").Code)
}
