package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
)

var (
	// ErrHandoffNotFound возвращается, когда записи с таким токеном нет (уже использована или не создавалась)
	ErrHandoffNotFound = errors.New("checkout.repository: handoff not found")

	// ErrHandoffCorrupt возвращается, когда запись не удалось разобрать
	ErrHandoffCorrupt = errors.New("checkout.repository: handoff record is corrupt")

	// ErrHandoffExists возвращается при повторном создании записи с тем же токеном
	ErrHandoffExists = errors.New("checkout.repository: handoff already exists")

	// ErrStore возвращается при ошибке хранилища
	ErrStore = errors.New("checkout.repository: store error")
)

// Handoff черновик записи, переживающий уход на страницу оплаты
type Handoff struct {
	Draft       domain.AppointmentDraft `json:"draft"`
	SessionID   string                  `json:"sessionId,omitempty"`
	AmountMinor int64                   `json:"amountMinor"`
	Currency    string                  `json:"currency"`
	CreatedAt   time.Time               `json:"createdAt"`
	Committed   bool                    `json:"committed,omitempty"` // оплата подтверждена вебхуком, бронирование уже в журнале
}

// Repository записи checkoutAppointmentDetails:<token>
type Repository struct {
	store documents.Store
}

func NewRepository(store documents.Store) *Repository {
	return &Repository{store: store}
}

func handoffKey(token string) string {
	return domain.KeyCheckoutHandoffPfx + token
}

// Save создает запись; токен должен быть новым
func (r *Repository) Save(ctx context.Context, token string, h *Handoff) error {
	body, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("%w: encode handoff: %v", ErrStore, err)
	}
	if _, err := r.store.Write(ctx, handoffKey(token), body, 0); err != nil {
		if errors.Is(err, documents.ErrVersionConflict) {
			return ErrHandoffExists
		}
		return fmt.Errorf("%w: save handoff: %v", ErrStore, err)
	}
	return nil
}

// AttachSession дописывает идентификатор платежной сессии к существующей записи
func (r *Repository) AttachSession(ctx context.Context, token, sessionID string) error {
	h, version, err := r.read(ctx, token)
	if err != nil {
		return err
	}
	h.SessionID = sessionID

	body, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("%w: encode handoff: %v", ErrStore, err)
	}
	if _, err := r.store.Write(ctx, handoffKey(token), body, version); err != nil {
		if errors.Is(err, documents.ErrVersionConflict) {
			// запись успели потребить
			return ErrHandoffNotFound
		}
		return fmt.Errorf("%w: attach session: %v", ErrStore, err)
	}
	return nil
}

// Get читает запись без удаления
func (r *Repository) Get(ctx context.Context, token string) (*Handoff, error) {
	h, _, err := r.read(ctx, token)
	return h, err
}

// MarkCommitted отмечает, что бронирование по записи уже зафиксировано.
// Запись остается до возврата клиента, чтобы он получил подтверждение.
func (r *Repository) MarkCommitted(ctx context.Context, token string) error {
	h, version, err := r.read(ctx, token)
	if err != nil {
		return err
	}
	if h.Committed {
		return nil
	}
	h.Committed = true

	body, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("%w: encode handoff: %v", ErrStore, err)
	}
	if _, err := r.store.Write(ctx, handoffKey(token), body, version); err != nil {
		if errors.Is(err, documents.ErrVersionConflict) {
			// клиент успел вернуться и потребить запись
			return ErrHandoffNotFound
		}
		return fmt.Errorf("%w: mark committed: %v", ErrStore, err)
	}
	return nil
}

// Consume читает и удаляет запись. Успешно завершается не более одного раза на токен.
// Поврежденная запись тоже удаляется, чтобы клиент начал заново.
func (r *Repository) Consume(ctx context.Context, token string) (*Handoff, error) {
	doc, err := r.store.Read(ctx, handoffKey(token))
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return nil, ErrHandoffNotFound
		}
		return nil, fmt.Errorf("%w: read handoff: %v", ErrStore, err)
	}

	if err := r.store.Delete(ctx, handoffKey(token), doc.Version); err != nil {
		if errors.Is(err, documents.ErrNotFound) || errors.Is(err, documents.ErrVersionConflict) {
			return nil, ErrHandoffNotFound
		}
		return nil, fmt.Errorf("%w: delete handoff: %v", ErrStore, err)
	}

	var h Handoff
	if err := json.Unmarshal(doc.Body, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHandoffCorrupt, err)
	}
	return &h, nil
}

// Restore возвращает потребленную запись обратно (например, если коммит не удался)
func (r *Repository) Restore(ctx context.Context, token string, h *Handoff) error {
	return r.Save(ctx, token, h)
}

func (r *Repository) read(ctx context.Context, token string) (*Handoff, int64, error) {
	doc, err := r.store.Read(ctx, handoffKey(token))
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return nil, 0, ErrHandoffNotFound
		}
		return nil, 0, fmt.Errorf("%w: read handoff: %v", ErrStore, err)
	}
	var h Handoff
	if err := json.Unmarshal(doc.Body, &h); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrHandoffCorrupt, err)
	}
	return &h, doc.Version, nil
}
