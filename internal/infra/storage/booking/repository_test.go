package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
	"github.com/m04kA/consultation-booking/pkg/logger"
	"github.com/m04kA/consultation-booking/pkg/types"
)

func newBooking(name, date, slot string) domain.Booking {
	return domain.Booking{
		CustomerName: name,
		DateKey:      types.DateKey(date),
		TimeSlot:     types.TimeString(slot),
		ServiceTitle: "Visa & Residence Permit",
	}
}

func appendBooking(b domain.Booking) func(domain.Ledger) (domain.Ledger, error) {
	return func(l domain.Ledger) (domain.Ledger, error) {
		if _, taken := l.Find(b.DateKey, b.TimeSlot); taken {
			return nil, ErrNoChange
		}
		return append(l, b), nil
	}
}

func TestRepository_UpdateAndList(t *testing.T) {
	store := documents.NewMemoryStore()
	repo := NewRepository(store, logger.NewNop())
	ctx := context.Background()

	ledger, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger)

	_, err = repo.Update(ctx, appendBooking(newBooking("Anna", "2025-03-10", "09:00")))
	require.NoError(t, err)

	doc, err := store.Read(ctx, domain.KeyConfirmedBookings)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"name":"Anna","date":"2025-03-10","time":"09:00","consultationTitle":"Visa & Residence Permit"}]`,
		string(doc.Body))

	ledger, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, "Anna", ledger[0].CustomerName)
}

func TestRepository_UpdateNoChangeSkipsWrite(t *testing.T) {
	store := documents.NewMemoryStore()
	repo := NewRepository(store, logger.NewNop())
	ctx := context.Background()

	_, err := repo.Update(ctx, appendBooking(newBooking("Anna", "2025-03-10", "09:00")))
	require.NoError(t, err)

	ledger, err := repo.Update(ctx, appendBooking(newBooking("Anna", "2025-03-10", "09:00")))
	require.NoError(t, err)
	assert.Len(t, ledger, 1)

	doc, err := store.Read(ctx, domain.KeyConfirmedBookings)
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.Version)
}

func TestRepository_UpdatePropagatesCallbackError(t *testing.T) {
	repo := NewRepository(documents.NewMemoryStore(), logger.NewNop())
	boom := errors.New("slot taken")

	_, err := repo.Update(context.Background(), func(domain.Ledger) (domain.Ledger, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestRepository_ConcurrentAppendsAllLand(t *testing.T) {
	repo := NewRepository(documents.NewMemoryStore(), logger.NewNop())
	repo.maxAttempts = 100
	ctx := context.Background()

	slots := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	var wg sync.WaitGroup
	for _, slot := range slots {
		wg.Add(1)
		go func(slot string) {
			defer wg.Done()
			_, err := repo.Update(ctx, appendBooking(newBooking("Customer", "2025-03-10", slot)))
			assert.NoError(t, err)
		}(slot)
	}
	wg.Wait()

	ledger, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ledger, len(slots))
}

func TestRepository_CorruptLedgerIsEmptyAndOverwritable(t *testing.T) {
	store := documents.NewMemoryStore()
	ctx := context.Background()
	_, err := store.Write(ctx, domain.KeyConfirmedBookings, []byte(`{"oops"`), documents.AnyVersion)
	require.NoError(t, err)

	repo := NewRepository(store, logger.NewNop())
	ledger, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger)

	_, err = repo.Update(ctx, appendBooking(newBooking("Anna", "2025-03-10", "09:00")))
	require.NoError(t, err)

	ledger, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ledger, 1)
}

func TestRepository_Delete(t *testing.T) {
	repo := NewRepository(documents.NewMemoryStore(), logger.NewNop())
	ctx := context.Background()

	_, err := repo.Update(ctx, appendBooking(newBooking("Anna", "2025-03-10", "09:00")))
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, "2025-03-10", "10:00"), ErrBookingNotFound)
	require.NoError(t, repo.Delete(ctx, "2025-03-10", "09:00"))

	ledger, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger)
}

type conflictingStore struct {
	documents.Store
}

func (conflictingStore) Write(context.Context, string, []byte, int64) (*documents.Document, error) {
	return nil, documents.ErrVersionConflict
}

func TestRepository_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := NewRepository(conflictingStore{Store: documents.NewMemoryStore()}, logger.NewNop())

	_, err := repo.Update(context.Background(), appendBooking(newBooking("Anna", "2025-03-10", "09:00")))
	assert.ErrorIs(t, err, ErrTooManyConflicts)
}
