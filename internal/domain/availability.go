package domain

import (
	"time"

	"github.com/m04kA/consultation-booking/pkg/types"
)

// WeeklyTemplate recurring availability: weekday index (0=Monday) -> slots
type WeeklyTemplate map[int][]types.TimeString

// DateOverrides per-date availability replacing the template.
// A present key with an empty set means the date is closed.
type DateOverrides map[types.DateKey][]types.TimeString

// AvailabilitySource tells where the effective slots of a date came from
type AvailabilitySource string

const (
	SourceUnconfigured AvailabilitySource = "unconfigured"
	SourceOverride     AvailabilitySource = "override"
	SourceRecurring    AvailabilitySource = "recurring"
)

// EffectiveAvailability slots configured for a date before bookings are subtracted
type EffectiveAvailability struct {
	Source AvailabilitySource
	Slots  []types.TimeString
}

// AvailabilitySettings full persisted availability state
type AvailabilitySettings struct {
	Weekly    WeeklyTemplate
	Overrides DateOverrides
}

// Normalize dedupes and sorts every set, drops invalid weekday indexes
func (s *AvailabilitySettings) Normalize() {
	weekly := make(WeeklyTemplate, len(s.Weekly))
	for day, slots := range s.Weekly {
		if day < 0 || day > 6 {
			continue
		}
		weekly[day] = NormalizeSlots(slots)
	}
	overrides := make(DateOverrides, len(s.Overrides))
	for date, slots := range s.Overrides {
		if _, err := types.ParseDateKey(date.String()); err != nil {
			continue
		}
		overrides[date] = NormalizeSlots(slots)
	}
	s.Weekly = weekly
	s.Overrides = overrides
}

// Clone deep-copies the settings
func (s AvailabilitySettings) Clone() AvailabilitySettings {
	out := AvailabilitySettings{
		Weekly:    make(WeeklyTemplate, len(s.Weekly)),
		Overrides: make(DateOverrides, len(s.Overrides)),
	}
	for day, slots := range s.Weekly {
		out.Weekly[day] = append([]types.TimeString{}, slots...)
	}
	for date, slots := range s.Overrides {
		out.Overrides[date] = append([]types.TimeString{}, slots...)
	}
	return out
}

// ResolveEffective applies the lookup order: override, then recurring template, then nothing.
// The weekday is taken from the calendar date itself, so no zone is involved.
func ResolveEffective(date types.DateKey, weekly WeeklyTemplate, overrides DateOverrides) (EffectiveAvailability, error) {
	if slots, ok := overrides[date]; ok {
		return EffectiveAvailability{Source: SourceOverride, Slots: NormalizeSlots(slots)}, nil
	}

	day, err := date.Time(time.UTC)
	if err != nil {
		return EffectiveAvailability{}, err
	}

	if slots, ok := weekly[WeekdayIndex(day)]; ok {
		return EffectiveAvailability{Source: SourceRecurring, Slots: NormalizeSlots(slots)}, nil
	}

	return EffectiveAvailability{Source: SourceUnconfigured, Slots: []types.TimeString{}}, nil
}
