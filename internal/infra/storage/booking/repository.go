package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
	"github.com/m04kA/consultation-booking/pkg/types"
)

const defaultMaxAttempts = 8

// Repository журнал подтвержденных бронирований (документ confirmedBookings)
type Repository struct {
	store       documents.Store
	logger      Logger
	maxAttempts int
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(store documents.Store, logger Logger) *Repository {
	return &Repository{store: store, logger: logger, maxAttempts: defaultMaxAttempts}
}

// List возвращает все бронирования
// Поврежденный документ считается пустым журналом
func (r *Repository) List(ctx context.Context) (domain.Ledger, error) {
	ledger, _, err := r.read(ctx)
	return ledger, err
}

// Update применяет fn к актуальному журналу и записывает результат с проверкой версии.
// При конкурентной записи журнал перечитывается и fn вызывается заново.
// Если fn вернула ErrNoChange, запись не выполняется и возвращается текущий журнал.
// Любая другая ошибка fn прерывает обновление и возвращается как есть.
func (r *Repository) Update(ctx context.Context, fn func(domain.Ledger) (domain.Ledger, error)) (domain.Ledger, error) {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		current, version, err := r.read(ctx)
		if err != nil {
			return nil, err
		}

		next, err := fn(current)
		if err != nil {
			if errors.Is(err, ErrNoChange) {
				return current, nil
			}
			return nil, err
		}

		body, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("%w: encode ledger: %v", ErrWrite, err)
		}

		if _, err := r.store.Write(ctx, domain.KeyConfirmedBookings, body, version); err != nil {
			if errors.Is(err, documents.ErrVersionConflict) {
				r.logger.Warn("booking.Update: concurrent write detected, retrying (attempt %d/%d)", attempt, r.maxAttempts)
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrWrite, err)
		}
		return next, nil
	}

	return nil, ErrTooManyConflicts
}

// Delete удаляет бронирование на (дата, слот)
func (r *Repository) Delete(ctx context.Context, date types.DateKey, slot types.TimeString) error {
	_, err := r.Update(ctx, func(ledger domain.Ledger) (domain.Ledger, error) {
		rest, removed := ledger.Without(date, slot)
		if !removed {
			return nil, ErrBookingNotFound
		}
		return rest, nil
	})
	return err
}

// read возвращает журнал и версию документа (0, если документа нет)
func (r *Repository) read(ctx context.Context) (domain.Ledger, int64, error) {
	doc, err := r.store.Read(ctx, domain.KeyConfirmedBookings)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return domain.Ledger{}, 0, nil
		}
		return nil, 0, fmt.Errorf("%w: %v", ErrRead, err)
	}

	var ledger domain.Ledger
	if err := json.Unmarshal(doc.Body, &ledger); err != nil {
		r.logger.Error("booking.read: corrupt %s record treated as empty: %v", domain.KeyConfirmedBookings, err)
		return domain.Ledger{}, doc.Version, nil
	}
	if ledger == nil {
		ledger = domain.Ledger{}
	}
	return ledger, doc.Version, nil
}
