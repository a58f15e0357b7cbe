package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
	"github.com/m04kA/consultation-booking/pkg/types"
)

// Repository недельный шаблон и переопределения по датам поверх хранилища документов.
// Запоминает последнее успешно прочитанное состояние и отдает его при сбое хранилища.
type Repository struct {
	store  documents.Store
	logger Logger

	mu        sync.RWMutex
	lastKnown *domain.AvailabilitySettings
}

func NewRepository(store documents.Store, logger Logger) *Repository {
	return &Repository{store: store, logger: logger}
}

// Load читает оба документа. Отсутствующий или поврежденный документ считается пустым.
func (r *Repository) Load(ctx context.Context) (domain.AvailabilitySettings, error) {
	weeklyBody, err := r.readBody(ctx, domain.KeyWeeklyTemplate)
	if err != nil {
		return r.fallback(err)
	}
	overridesBody, err := r.readBody(ctx, domain.KeyDateOverrides)
	if err != nil {
		return r.fallback(err)
	}

	settings := domain.AvailabilitySettings{
		Weekly:    r.decodeWeekly(weeklyBody),
		Overrides: r.decodeOverrides(overridesBody),
	}
	settings.Normalize()

	r.remember(settings)
	return settings.Clone(), nil
}

// SaveWeekly перезаписывает недельный шаблон целиком
func (r *Repository) SaveWeekly(ctx context.Context, weekly domain.WeeklyTemplate) error {
	raw := make(map[string][]types.TimeString, len(weekly))
	for day, slots := range weekly {
		raw[strconv.Itoa(day)] = domain.NormalizeSlots(slots)
	}
	if err := r.write(ctx, domain.KeyWeeklyTemplate, raw); err != nil {
		return err
	}

	r.mu.Lock()
	if r.lastKnown != nil {
		r.lastKnown.Weekly = cloneWeekly(weekly)
	}
	r.mu.Unlock()
	return nil
}

// SaveOverrides перезаписывает переопределения по датам целиком
func (r *Repository) SaveOverrides(ctx context.Context, overrides domain.DateOverrides) error {
	raw := make(map[string][]types.TimeString, len(overrides))
	for date, slots := range overrides {
		raw[date.String()] = domain.NormalizeSlots(slots)
	}
	if err := r.write(ctx, domain.KeyDateOverrides, raw); err != nil {
		return err
	}

	r.mu.Lock()
	if r.lastKnown != nil {
		r.lastKnown.Overrides = cloneOverrides(overrides)
	}
	r.mu.Unlock()
	return nil
}

// Watch вызывает onChange после каждой записи любого из документов (в том числе другим процессом).
// Блокируется до отмены ctx.
func (r *Repository) Watch(ctx context.Context, onChange func(domain.AvailabilitySettings)) error {
	weeklyCh, err := r.store.Subscribe(ctx, domain.KeyWeeklyTemplate)
	if err != nil {
		return err
	}
	overridesCh, err := r.store.Subscribe(ctx, domain.KeyDateOverrides)
	if err != nil {
		return err
	}

	for weeklyCh != nil || overridesCh != nil {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-weeklyCh:
			if !ok {
				weeklyCh = nil
				continue
			}
		case _, ok := <-overridesCh:
			if !ok {
				overridesCh = nil
				continue
			}
		}

		settings, err := r.Load(ctx)
		if err != nil {
			r.logger.Warn("availability.Watch: reload failed: %v", err)
			continue
		}
		onChange(settings)
	}
	return nil
}

func (r *Repository) readBody(ctx context.Context, key string) ([]byte, error) {
	doc, err := r.store.Read(ctx, key)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return doc.Body, nil
}

func (r *Repository) fallback(cause error) (domain.AvailabilitySettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.lastKnown == nil {
		return domain.AvailabilitySettings{}, fmt.Errorf("%w: %v", ErrRead, cause)
	}
	r.logger.Warn("availability.Load: store unavailable, serving last known state: %v", cause)
	return r.lastKnown.Clone(), nil
}

func (r *Repository) remember(settings domain.AvailabilitySettings) {
	snapshot := settings.Clone()
	r.mu.Lock()
	r.lastKnown = &snapshot
	r.mu.Unlock()
}

func (r *Repository) write(ctx context.Context, key string, value interface{}) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, key, err)
	}
	if _, err := r.store.Write(ctx, key, body, documents.AnyVersion); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, key, err)
	}
	return nil
}

// decodeWeekly пропускает некорректные дни и слоты, поврежденный JSON дает пустой шаблон
func (r *Repository) decodeWeekly(body []byte) domain.WeeklyTemplate {
	weekly := domain.WeeklyTemplate{}
	if len(body) == 0 {
		return weekly
	}

	var raw map[string][]string
	if err := json.Unmarshal(body, &raw); err != nil {
		r.logger.Warn("availability: corrupt %s record treated as empty: %v", domain.KeyWeeklyTemplate, err)
		return weekly
	}

	for dayStr, slots := range raw {
		day, err := strconv.Atoi(dayStr)
		if err != nil || day < 0 || day > 6 {
			r.logger.Warn("availability: skipping invalid weekday %q", dayStr)
			continue
		}
		weekly[day] = r.parseSlots(slots)
	}
	return weekly
}

func (r *Repository) decodeOverrides(body []byte) domain.DateOverrides {
	overrides := domain.DateOverrides{}
	if len(body) == 0 {
		return overrides
	}

	var raw map[string][]string
	if err := json.Unmarshal(body, &raw); err != nil {
		r.logger.Warn("availability: corrupt %s record treated as empty: %v", domain.KeyDateOverrides, err)
		return overrides
	}

	for dateStr, slots := range raw {
		date, err := types.ParseDateKey(dateStr)
		if err != nil {
			r.logger.Warn("availability: skipping invalid override date %q", dateStr)
			continue
		}
		overrides[date] = r.parseSlots(slots)
	}
	return overrides
}

func (r *Repository) parseSlots(raw []string) []types.TimeString {
	slots := make([]types.TimeString, 0, len(raw))
	for _, s := range raw {
		ts, err := types.NewTimeStringFromString(s)
		if err != nil {
			r.logger.Warn("availability: skipping invalid slot %q", s)
			continue
		}
		slots = append(slots, ts)
	}
	return slots
}

func cloneWeekly(w domain.WeeklyTemplate) domain.WeeklyTemplate {
	return domain.AvailabilitySettings{Weekly: w}.Clone().Weekly
}

func cloneOverrides(o domain.DateOverrides) domain.DateOverrides {
	return domain.AvailabilitySettings{Overrides: o}.Clone().Overrides
}
