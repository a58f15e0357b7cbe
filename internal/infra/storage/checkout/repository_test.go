package checkout

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
)

func sampleHandoff() *Handoff {
	return &Handoff{
		Draft: domain.AppointmentDraft{
			ServiceID: "visa_extension",
			Date:      "2025-03-10",
			Time:      "09:00",
			Contact:   domain.ContactDetails{Name: "Anna", Email: "anna@example.com", WhatsApp: "+491761234567"},
			Price:     "40",
		},
		AmountMinor: 4000,
		Currency:    "eur",
		CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRepository_SaveAttachConsume(t *testing.T) {
	store := documents.NewMemoryStore()
	repo := NewRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "tok-1", sampleHandoff()))
	assert.ErrorIs(t, repo.Save(ctx, "tok-1", sampleHandoff()), ErrHandoffExists)

	_, err := store.Read(ctx, "checkoutAppointmentDetails:tok-1")
	require.NoError(t, err, "record is stored under the durable handoff key")

	require.NoError(t, repo.AttachSession(ctx, "tok-1", "cs_test_123"))

	h, err := repo.Consume(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", h.SessionID)
	assert.Equal(t, "Anna", h.Draft.Contact.Name)
	assert.Equal(t, int64(4000), h.AmountMinor)

	_, err = repo.Consume(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrHandoffNotFound)

	assert.ErrorIs(t, repo.AttachSession(ctx, "tok-1", "cs_x"), ErrHandoffNotFound)
}

func TestRepository_ConsumeOnce(t *testing.T) {
	repo := NewRepository(documents.NewMemoryStore())
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "tok", sampleHandoff()))

	var (
		wg       sync.WaitGroup
		consumed int32
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Consume(ctx, "tok"); err == nil {
				atomic.AddInt32(&consumed, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), consumed)
}

func TestRepository_ConsumeCorrupt(t *testing.T) {
	store := documents.NewMemoryStore()
	repo := NewRepository(store)
	ctx := context.Background()

	_, err := store.Write(ctx, "checkoutAppointmentDetails:bad", []byte(`{"draft":`), documents.AnyVersion)
	require.NoError(t, err)

	_, err = repo.Consume(ctx, "bad")
	assert.ErrorIs(t, err, ErrHandoffCorrupt)

	_, err = store.Read(ctx, "checkoutAppointmentDetails:bad")
	assert.ErrorIs(t, err, documents.ErrNotFound, "corrupt record is discarded")
}

func TestRepository_Restore(t *testing.T) {
	repo := NewRepository(documents.NewMemoryStore())
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "tok", sampleHandoff()))

	h, err := repo.Consume(ctx, "tok")
	require.NoError(t, err)
	require.NoError(t, repo.Restore(ctx, "tok", h))

	again, err := repo.Consume(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, h.Draft, again.Draft)
}

func TestRepository_GetAndMarkCommitted(t *testing.T) {
	repo := NewRepository(documents.NewMemoryStore())
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "tok-1", sampleHandoff()))

	h, err := repo.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, h.Committed)

	require.NoError(t, repo.MarkCommitted(ctx, "tok-1"))
	require.NoError(t, repo.MarkCommitted(ctx, "tok-1"), "marking twice is a no-op")

	// Get записи не удаляет: возврат клиента видит отметку
	h, err = repo.Consume(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, h.Committed)
	assert.Equal(t, "Anna", h.Draft.Contact.Name)

	_, err = repo.Get(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrHandoffNotFound)
	assert.ErrorIs(t, repo.MarkCommitted(ctx, "tok-1"), ErrHandoffNotFound)
}
