package domain

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/consultation-booking/pkg/types"
)

const (
	calendarTimeLayout  = "20060102T150405Z"
	humanDateLayout     = "Monday, January 2, 2006"
	calendarEventPlace  = "WhatsApp Video Call"
	calendarRenderURL   = "https://www.google.com/calendar/render"
	whatsAppMessageBase = "https://wa.me/"
)

// ConfirmedAppointment denormalized snapshot shown after a successful commit
type ConfirmedAppointment struct {
	CustomerName     string
	DateKey          types.DateKey
	TimeSlot         types.TimeString
	ServiceTitle     string
	CustomerWhatsApp string
	CalendarEventURL string
	WhatsAppURL      string
}

// NewConfirmedAppointment builds the snapshot with calendar export and consultant chat links.
// loc is the local zone in which the slot labels are interpreted.
func NewConfirmedAppointment(b Booking, customerWhatsApp, consultantNumber string, loc *time.Location) (*ConfirmedAppointment, error) {
	day, err := b.DateKey.Time(loc)
	if err != nil {
		return nil, err
	}
	start, err := b.TimeSlot.On(day)
	if err != nil {
		return nil, err
	}
	end := start.Add(SlotDurationMinutes * time.Minute)

	calendar := url.Values{}
	calendar.Set("action", "TEMPLATE")
	calendar.Set("text", "Consultation: "+b.ServiceTitle)
	calendar.Set("dates", start.UTC().Format(calendarTimeLayout)+"/"+end.UTC().Format(calendarTimeLayout))
	calendar.Set("details", fmt.Sprintf("Your %d-minute consultation call.\nThe consultant will call you via WhatsApp: %s",
		SlotDurationMinutes, customerWhatsApp))
	calendar.Set("location", calendarEventPlace)

	message := fmt.Sprintf("Hi, I'm confirming my '%s' consultation for %s at %s. My name is %s.",
		b.ServiceTitle, day.Format(humanDateLayout), b.TimeSlot, b.CustomerName)

	return &ConfirmedAppointment{
		CustomerName:     b.CustomerName,
		DateKey:          b.DateKey,
		TimeSlot:         b.TimeSlot,
		ServiceTitle:     b.ServiceTitle,
		CustomerWhatsApp: customerWhatsApp,
		CalendarEventURL: calendarRenderURL + "?" + calendar.Encode(),
		WhatsAppURL:      whatsAppMessageBase + consultantNumber + "?text=" + url.QueryEscape(message),
	}, nil
}
