package domain

import (
	"sort"
	"time"

	"github.com/m04kA/consultation-booking/pkg/types"
)

// MorningSlots fixed morning session slots (09:00 - 12:30)
var MorningSlots = []types.TimeString{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30",
}

// AfternoonSlots fixed afternoon session slots (14:00 - 17:30)
var AfternoonSlots = []types.TimeString{
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
}

// SlotCatalog returns every slot the admin is allowed to offer, in ascending order
func SlotCatalog() []types.TimeString {
	all := make([]types.TimeString, 0, len(MorningSlots)+len(AfternoonSlots))
	all = append(all, MorningSlots...)
	return append(all, AfternoonSlots...)
}

// IsCatalogSlot reports whether slot belongs to the fixed catalog
func IsCatalogSlot(slot types.TimeString) bool {
	for _, s := range MorningSlots {
		if s == slot {
			return true
		}
	}
	for _, s := range AfternoonSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// WeekdayIndex maps a date to 0=Monday .. 6=Sunday
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// NormalizeSlots returns a deduplicated ascending copy of slots.
// Nil input yields an empty, non-nil slice.
func NormalizeSlots(slots []types.TimeString) []types.TimeString {
	seen := make(map[types.TimeString]struct{}, len(slots))
	out := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ToggleSlot removes slot from slots if present, otherwise inserts it.
// The result is always normalized.
func ToggleSlot(slots []types.TimeString, slot types.TimeString) []types.TimeString {
	out := make([]types.TimeString, 0, len(slots)+1)
	found := false
	for _, s := range slots {
		if s == slot {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, slot)
	}
	return NormalizeSlots(out)
}

// ContainsSlot reports whether slot is in slots
func ContainsSlot(slots []types.TimeString, slot types.TimeString) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
