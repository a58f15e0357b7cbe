package models

import (
	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/pkg/types"
)

// Request модели

// ToggleRecurringRequest переключение слота в недельном шаблоне
type ToggleRecurringRequest struct {
	Day  int              // 0 = понедельник ... 6 = воскресенье
	Slot types.TimeString // слот из каталога
}

// ToggleDateRequest переключение слота на конкретную дату
type ToggleDateRequest struct {
	Date types.DateKey
	Slot types.TimeString
}

// Response модели

// SettingsResponse полное состояние доступности для админки
type SettingsResponse struct {
	Catalog   []types.TimeString                   `json:"catalog"`
	Recurring map[int][]types.TimeString           `json:"recurring"`
	Dates     map[types.DateKey][]types.TimeString `json:"dates"`
	Saved     bool                                 `json:"saved"`
}

// DateAvailabilityResponse эффективная доступность даты
type DateAvailabilityResponse struct {
	Date   types.DateKey             `json:"date"`
	Source domain.AvailabilitySource `json:"source"`
	Slots  []types.TimeString        `json:"slots"`
	Saved  bool                      `json:"saved"`
}

// FromSettings конвертирует доменные настройки в ответ
func FromSettings(s domain.AvailabilitySettings, saved bool) *SettingsResponse {
	c := s.Clone()
	return &SettingsResponse{
		Catalog:   domain.SlotCatalog(),
		Recurring: c.Weekly,
		Dates:     c.Overrides,
		Saved:     saved,
	}
}

// FromEffective конвертирует эффективную доступность в ответ
func FromEffective(date types.DateKey, eff domain.EffectiveAvailability, saved bool) *DateAvailabilityResponse {
	slots := eff.Slots
	if slots == nil {
		slots = []types.TimeString{}
	}
	return &DateAvailabilityResponse{Date: date, Source: eff.Source, Slots: slots, Saved: saved}
}
