package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
	"github.com/m04kA/consultation-booking/pkg/logger"
	"github.com/m04kA/consultation-booking/pkg/types"
)

// flakyStore хранилище, которое можно "сломать" посреди теста
type flakyStore struct {
	documents.Store
	broken bool
}

func (s *flakyStore) Read(ctx context.Context, key string) (*documents.Document, error) {
	if s.broken {
		return nil, errors.New("connection refused")
	}
	return s.Store.Read(ctx, key)
}

func (s *flakyStore) Write(ctx context.Context, key string, body []byte, v int64) (*documents.Document, error) {
	if s.broken {
		return nil, errors.New("connection refused")
	}
	return s.Store.Write(ctx, key, body, v)
}

func TestRepository_LoadEmpty(t *testing.T) {
	repo := NewRepository(documents.NewMemoryStore(), logger.NewNop())

	settings, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, settings.Weekly)
	assert.Empty(t, settings.Overrides)
}

func TestRepository_SaveAndLoad(t *testing.T) {
	store := documents.NewMemoryStore()
	repo := NewRepository(store, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.SaveWeekly(ctx, domain.WeeklyTemplate{0: {"10:00", "09:00"}}))
	require.NoError(t, repo.SaveOverrides(ctx, domain.DateOverrides{"2025-03-12": {}}))

	doc, err := store.Read(ctx, domain.KeyWeeklyTemplate)
	require.NoError(t, err)
	assert.JSONEq(t, `{"0":["09:00","10:00"]}`, string(doc.Body))

	doc, err = store.Read(ctx, domain.KeyDateOverrides)
	require.NoError(t, err)
	assert.JSONEq(t, `{"2025-03-12":[]}`, string(doc.Body))

	settings, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, settings.Weekly[0])
	slots, ok := settings.Overrides["2025-03-12"]
	assert.True(t, ok, "empty override must survive a round trip")
	assert.Empty(t, slots)
}

func TestRepository_CorruptRecordsReadAsEmpty(t *testing.T) {
	store := documents.NewMemoryStore()
	ctx := context.Background()

	_, err := store.Write(ctx, domain.KeyWeeklyTemplate, []byte(`{not json`), documents.AnyVersion)
	require.NoError(t, err)
	_, err = store.Write(ctx, domain.KeyDateOverrides,
		[]byte(`{"2025-03-10":["09:00","bogus"],"yesterday":["10:00"]}`), documents.AnyVersion)
	require.NoError(t, err)

	repo := NewRepository(store, logger.NewNop())
	settings, err := repo.Load(ctx)
	require.NoError(t, err)

	assert.Empty(t, settings.Weekly)
	assert.Equal(t, domain.DateOverrides{"2025-03-10": {"09:00"}}, settings.Overrides)
}

func TestRepository_FallbackToLastKnown(t *testing.T) {
	store := &flakyStore{Store: documents.NewMemoryStore()}
	repo := NewRepository(store, logger.NewNop())
	ctx := context.Background()

	_, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.SaveWeekly(ctx, domain.WeeklyTemplate{2: {"14:00"}}))

	store.broken = true
	settings, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"14:00"}, settings.Weekly[2])

	assert.ErrorIs(t, repo.SaveWeekly(ctx, domain.WeeklyTemplate{}), ErrWrite)
}

func TestRepository_NoFallbackWithoutSnapshot(t *testing.T) {
	store := &flakyStore{Store: documents.NewMemoryStore(), broken: true}
	repo := NewRepository(store, logger.NewNop())

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrRead)
}

func TestRepository_Watch(t *testing.T) {
	store := documents.NewMemoryStore()
	repo := NewRepository(store, logger.NewNop())
	other := NewRepository(store, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan domain.AvailabilitySettings, 4)
	done := make(chan error, 1)
	go func() {
		done <- repo.Watch(ctx, func(s domain.AvailabilitySettings) { changes <- s })
	}()

	// ждем, пока подписка зарегистрируется
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, other.SaveOverrides(context.Background(), domain.DateOverrides{"2025-03-10": {"11:00"}}))

	select {
	case s := <-changes:
		assert.Equal(t, []types.TimeString{"11:00"}, s.Overrides["2025-03-10"])
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not report the change")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
