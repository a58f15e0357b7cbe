package domain

import (
	"strings"
	"time"

	"github.com/m04kA/consultation-booking/pkg/types"
)

// Booking represents a confirmed consultation.
// Immutable after creation; removed only by an admin cancellation.
type Booking struct {
	CustomerName string           `json:"name"`
	DateKey      types.DateKey    `json:"date"`
	TimeSlot     types.TimeString `json:"time"`
	ServiceTitle string           `json:"consultationTitle"`
	CreatedAt    *time.Time       `json:"createdAt,omitempty"`
}

// SameSlot reports whether the booking occupies (date, slot)
func (b *Booking) SameSlot(date types.DateKey, slot types.TimeString) bool {
	return b.DateKey == date && b.TimeSlot == slot
}

// SameCustomer compares names ignoring surrounding whitespace and case
func (b *Booking) SameCustomer(name string) bool {
	return strings.EqualFold(strings.TrimSpace(b.CustomerName), strings.TrimSpace(name))
}

// Ledger all confirmed bookings in insertion order
type Ledger []Booking

// Find returns the booking that occupies (date, slot), if any
func (l Ledger) Find(date types.DateKey, slot types.TimeString) (*Booking, bool) {
	for i := range l {
		if l[i].SameSlot(date, slot) {
			return &l[i], true
		}
	}
	return nil, false
}

// BookedSlots returns the slots taken on date
func (l Ledger) BookedSlots(date types.DateKey) map[types.TimeString]struct{} {
	taken := make(map[types.TimeString]struct{})
	for _, b := range l {
		if b.DateKey == date {
			taken[b.TimeSlot] = struct{}{}
		}
	}
	return taken
}

// Without returns a copy of the ledger without the booking at (date, slot)
func (l Ledger) Without(date types.DateKey, slot types.TimeString) (Ledger, bool) {
	out := make(Ledger, 0, len(l))
	removed := false
	for _, b := range l {
		if b.SameSlot(date, slot) {
			removed = true
			continue
		}
		out = append(out, b)
	}
	return out, removed
}
