package get_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/consultation-booking/internal/domain"
	availabilityRepo "github.com/m04kA/consultation-booking/internal/infra/storage/availability"
	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
	"github.com/m04kA/consultation-booking/internal/service/availability"
	"github.com/m04kA/consultation-booking/pkg/logger"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	ctx := context.Background()
	log := logger.NewNop()
	repo := availabilityRepo.NewRepository(documents.NewMemoryStore(), log)
	require.NoError(t, repo.SaveWeekly(ctx, domain.WeeklyTemplate{0: {"09:00", "10:00"}}))
	require.NoError(t, repo.SaveOverrides(ctx, domain.DateOverrides{"2025-03-11": {"14:00"}}))

	svc := availability.NewService(repo, 10*time.Millisecond, log)
	t.Cleanup(svc.Close)
	require.NoError(t, svc.Init(ctx))
	return NewHandler(svc, log)
}

func serve(h *Handler, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/availability"+query, nil))
	return w
}

func TestHandle_Settings(t *testing.T) {
	w := serve(newHandler(t), "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"recurring":{"0":["09:00","10:00"]}`)
	assert.Contains(t, w.Body.String(), `"dates":{"2025-03-11":["14:00"]}`)
}

// 2025-03-10 понедельник, 2025-03-11 вторник
func TestHandle_Date(t *testing.T) {
	h := newHandler(t)

	w := serve(h, "?date=2025-03-10")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"date":"2025-03-10","source":"recurring","slots":["09:00","10:00"],"saved":true}`, w.Body.String())

	w = serve(h, "?date=2025-03-11")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"date":"2025-03-11","source":"override","slots":["14:00"],"saved":true}`, w.Body.String())

	w = serve(h, "?date=2025-13-40")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
