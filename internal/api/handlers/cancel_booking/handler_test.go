package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/consultation-booking/internal/api/handlers/get_booking"
	"github.com/m04kA/consultation-booking/internal/domain"
	bookingRepo "github.com/m04kA/consultation-booking/internal/infra/storage/booking"
	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
	"github.com/m04kA/consultation-booking/internal/service/bookings"
	"github.com/m04kA/consultation-booking/pkg/logger"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	log := logger.NewNop()
	repo := bookingRepo.NewRepository(documents.NewMemoryStore(), log)
	_, err := repo.Update(context.Background(), func(l domain.Ledger) (domain.Ledger, error) {
		return append(l, domain.Booking{CustomerName: "Anna Schmidt", DateKey: "2025-05-05", TimeSlot: "09:00", ServiceTitle: "Visa & Residence Permit"}), nil
	})
	require.NoError(t, err)

	svc := bookings.NewService(repo, log)
	router := mux.NewRouter()
	router.HandleFunc("/admin/bookings/{date}/{slot}", NewHandler(svc, log).Handle).Methods(http.MethodDelete)
	router.HandleFunc("/admin/bookings/{date}/{slot}", get_booking.NewHandler(svc, log).Handle).Methods(http.MethodGet)
	return router
}

func do(router *mux.Router, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestCancel_FreesSlot(t *testing.T) {
	router := newRouter(t)

	w := do(router, http.MethodGet, "/admin/bookings/2025-05-05/09:00")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Anna Schmidt"`)

	w = do(router, http.MethodDelete, "/admin/bookings/2025-05-05/09:00")
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/admin/bookings/2025-05-05/09:00").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodDelete, "/admin/bookings/2025-05-05/09:00").Code)
}

func TestCancel_InvalidKey(t *testing.T) {
	router := newRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodDelete, "/admin/bookings/05-05-2025/09:00").Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodDelete, "/admin/bookings/2025-05-05/nine").Code)
}
