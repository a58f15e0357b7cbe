package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("consultation_booking")

	m.IncBookingCommit(OutcomeCommitted)
	m.IncBookingCommit(OutcomeCommitted)
	m.IncBookingCommit(OutcomeConflict)
	m.ObserveStoreOp("write", time.Millisecond, errors.New("boom"))
	m.ObserveStoreOp("read", time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingCommits.WithLabelValues(OutcomeCommitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingCommits.WithLabelValues(OutcomeConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOpErrors.WithLabelValues("write")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.StoreOpErrors.WithLabelValues("read")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New("consultation_booking")
	m.ObserveHTTP(http.MethodGet, "/api/v1/available-slots", "200", 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "consultation_booking_http_requests_total")
}
