package toggle_date_slot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/consultation-booking/internal/domain"
	availabilityRepo "github.com/m04kA/consultation-booking/internal/infra/storage/availability"
	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
	"github.com/m04kA/consultation-booking/internal/service/availability"
	"github.com/m04kA/consultation-booking/internal/service/availability/models"
	"github.com/m04kA/consultation-booking/pkg/logger"
	"github.com/m04kA/consultation-booking/pkg/types"
)

// failingStore отказывает в записи, чтение проходит к памяти
type failingStore struct {
	*documents.MemoryStore
}

func (failingStore) Write(context.Context, string, []byte, int64) (*documents.Document, error) {
	return nil, errors.New("store is down")
}

func newHandler(t *testing.T, store documents.Store) (*Handler, *availabilityRepo.Repository) {
	t.Helper()
	log := logger.NewNop()
	repo := availabilityRepo.NewRepository(store, log)
	svc := availability.NewService(repo, 10*time.Millisecond, log)
	t.Cleanup(svc.Close)
	require.NoError(t, svc.Init(context.Background()))
	return NewHandler(svc, log), repo
}

func serve(h *Handler, date, slot string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/availability/dates/"+date+"/slots/"+slot+"/toggle", nil)
	r = mux.SetURLVars(r, map[string]string{"date": date, "slot": slot})
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

// 2025-03-10 понедельник
func TestHandle_SeedsFromRecurring(t *testing.T) {
	ctx := context.Background()
	store := documents.NewMemoryStore()
	seed := availabilityRepo.NewRepository(store, logger.NewNop())
	require.NoError(t, seed.SaveWeekly(ctx, domain.WeeklyTemplate{0: {"09:00", "10:00"}}))

	h, repo := newHandler(t, store)

	w := serve(h, "2025-03-10", "09:00")
	require.Equal(t, http.StatusOK, w.Code)

	var body models.DateAvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domain.SourceOverride, body.Source)
	assert.Equal(t, []types.TimeString{"10:00"}, body.Slots)

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00"}, stored.Overrides["2025-03-10"])
}

func TestHandle_Rejects(t *testing.T) {
	h, _ := newHandler(t, documents.NewMemoryStore())

	assert.Equal(t, http.StatusBadRequest, serve(h, "10-03-2025", "09:00").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "2025-03-10", "nine").Code)
	// 13:00 не входит в каталог слотов
	assert.Equal(t, http.StatusBadRequest, serve(h, "2025-03-10", "13:00").Code)
}

func TestHandle_NotSaved(t *testing.T) {
	h, _ := newHandler(t, failingStore{documents.NewMemoryStore()})

	w := serve(h, "2025-03-10", "09:00")

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"saved":false`)
	assert.Contains(t, w.Body.String(), `"slots":["09:00"]`)
}
