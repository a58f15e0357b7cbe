package domain

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/consultation-booking/pkg/types"
)

func TestSlotCatalog(t *testing.T) {
	catalog := SlotCatalog()
	require.Len(t, catalog, 16)
	assert.Equal(t, types.TimeString("09:00"), catalog[0])
	assert.Equal(t, types.TimeString("17:30"), catalog[15])
	assert.Equal(t, NormalizeSlots(catalog), catalog)

	assert.True(t, IsCatalogSlot("12:30"))
	assert.False(t, IsCatalogSlot("13:00"))
	assert.False(t, IsCatalogSlot("09:15"))
}

func TestWeekdayIndex(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{date: "2025-03-10", want: 0}, // понедельник
		{date: "2025-03-14", want: 4},
		{date: "2025-03-15", want: 5},
		{date: "2025-03-16", want: 6}, // воскресенье
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := time.Parse(DateFormat, tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, WeekdayIndex(d))
		})
	}
}

func TestToggleSlot(t *testing.T) {
	slots := []types.TimeString{"09:00", "14:00"}

	added := ToggleSlot(slots, "10:00")
	assert.Equal(t, []types.TimeString{"09:00", "10:00", "14:00"}, added)

	removed := ToggleSlot(added, "09:00")
	assert.Equal(t, []types.TimeString{"10:00", "14:00"}, removed)

	assert.Equal(t, []types.TimeString{"09:00", "14:00"}, slots, "input must not be mutated")
	assert.Equal(t, slots, ToggleSlot(ToggleSlot(slots, "16:30"), "16:30"))
}

func TestNormalizeSlots(t *testing.T) {
	assert.Equal(t, []types.TimeString{"09:00", "14:30"}, NormalizeSlots([]types.TimeString{"14:30", "09:00", "14:30"}))
	assert.NotNil(t, NormalizeSlots(nil))
}

func TestResolveEffective(t *testing.T) {
	weekly := WeeklyTemplate{0: {"10:00", "09:00"}}

	t.Run("recurring applies on configured weekday", func(t *testing.T) {
		eff, err := ResolveEffective("2025-03-10", weekly, DateOverrides{})
		require.NoError(t, err)
		assert.Equal(t, SourceRecurring, eff.Source)
		assert.Equal(t, []types.TimeString{"09:00", "10:00"}, eff.Slots)
	})

	t.Run("override wins even when empty", func(t *testing.T) {
		eff, err := ResolveEffective("2025-03-10", weekly, DateOverrides{"2025-03-10": {}})
		require.NoError(t, err)
		assert.Equal(t, SourceOverride, eff.Source)
		assert.Empty(t, eff.Slots)
	})

	t.Run("unconfigured weekday", func(t *testing.T) {
		eff, err := ResolveEffective("2025-03-11", weekly, nil)
		require.NoError(t, err)
		assert.Equal(t, SourceUnconfigured, eff.Source)
		assert.Empty(t, eff.Slots)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := ResolveEffective("10/03/2025", weekly, nil)
		assert.ErrorIs(t, err, types.ErrInvalidDateKey)
	})
}

func TestAvailabilitySettings_Normalize(t *testing.T) {
	s := AvailabilitySettings{
		Weekly:    WeeklyTemplate{1: {"14:00", "09:00", "09:00"}, 9: {"10:00"}},
		Overrides: DateOverrides{"2025-03-10": {"12:00", "09:30"}, "garbage": {"10:00"}},
	}
	s.Normalize()

	assert.Equal(t, WeeklyTemplate{1: {"09:00", "14:00"}}, s.Weekly)
	assert.Equal(t, DateOverrides{"2025-03-10": {"09:30", "12:00"}}, s.Overrides)
}

func TestLedger(t *testing.T) {
	ledger := Ledger{
		{CustomerName: "Anna", DateKey: "2025-03-10", TimeSlot: "09:00", ServiceTitle: "Visa & Residence Permit"},
		{CustomerName: "Ben", DateKey: "2025-03-10", TimeSlot: "10:00", ServiceTitle: "Visa & Residence Permit"},
		{CustomerName: "Cem", DateKey: "2025-03-11", TimeSlot: "09:00", ServiceTitle: "Visa & Residence Permit"},
	}

	b, ok := ledger.Find("2025-03-10", "10:00")
	require.True(t, ok)
	assert.Equal(t, "Ben", b.CustomerName)
	assert.True(t, b.SameCustomer("  ben "))

	assert.Len(t, ledger.BookedSlots("2025-03-10"), 2)

	rest, removed := ledger.Without("2025-03-10", "09:00")
	assert.True(t, removed)
	assert.Len(t, rest, 2)
	assert.Len(t, ledger, 3)

	_, removed = ledger.Without("2025-03-12", "09:00")
	assert.False(t, removed)
}

func TestContactDetails_Validate(t *testing.T) {
	tests := []struct {
		name       string
		contact    ContactDetails
		wantFields []string
	}{
		{
			name:    "valid",
			contact: ContactDetails{Name: "Anna Schmidt", Email: "anna@example.com", WhatsApp: "+491761234567"},
		},
		{
			name:       "blank name",
			contact:    ContactDetails{Name: "   ", Email: "anna@example.com", WhatsApp: "+491761234567"},
			wantFields: []string{"name"},
		},
		{
			name:       "bad email and whatsapp without plus",
			contact:    ContactDetails{Name: "Anna", Email: "anna-at-example", WhatsApp: "491761234567"},
			wantFields: []string{"email", "whatsapp"},
		},
		{
			name:       "whatsapp too short",
			contact:    ContactDetails{Name: "Anna", Email: "anna@example.com", WhatsApp: "+123456"},
			wantFields: []string{"whatsapp"},
		},
		{
			name:       "whatsapp too long",
			contact:    ContactDetails{Name: "Anna", Email: "anna@example.com", WhatsApp: "+1234567890123456"},
			wantFields: []string{"whatsapp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.contact.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			got := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				got = append(got, f.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, got)
		})
	}
}

func TestAppointmentDraft_Validate(t *testing.T) {
	draft := AppointmentDraft{
		ServiceID: "visa_extension",
		Date:      "2025-03-10",
		Time:      "09:00",
		Contact:   ContactDetails{Name: " Anna ", Email: "anna@example.com", WhatsApp: "+491761234567"},
	}
	require.NoError(t, draft.Validate())
	assert.Equal(t, "Anna", draft.Contact.Name)

	draft.Time = "9am"
	draft.Date = ""
	err := draft.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "time")
	assert.Contains(t, err.Error(), "date")
}

func TestConsultationCatalog(t *testing.T) {
	require.Len(t, Consultations(), 4)

	c, ok := FindConsultation("degree_recognition")
	require.True(t, ok)
	assert.Equal(t, "Degree Recognition (ZAB)", c.Title)
	assert.False(t, IsPlaceholderPaymentRef(c.PaymentProductRef))

	_, ok = FindConsultation("tax_return")
	assert.False(t, ok)

	assert.Equal(t, "30", DefaultPrices()["integrationCoursePrice"])

	assert.True(t, IsPlaceholderPaymentRef(""))
	assert.True(t, IsPlaceholderPaymentRef("price_REPLACE_ME"))
	assert.True(t, IsPlaceholderPaymentRef("price_FAKE_123"))
}

func TestNewConfirmedAppointment(t *testing.T) {
	booking := Booking{
		CustomerName: "Anna",
		DateKey:      "2025-03-10",
		TimeSlot:     "09:00",
		ServiceTitle: "Visa & Residence Permit",
	}

	conf, err := NewConfirmedAppointment(booking, "+491761234567", "4917655382575", time.UTC)
	require.NoError(t, err)

	cal, err := url.Parse(conf.CalendarEventURL)
	require.NoError(t, err)
	assert.Equal(t, "TEMPLATE", cal.Query().Get("action"))
	assert.Equal(t, "20250310T090000Z/20250310T093000Z", cal.Query().Get("dates"))
	assert.Equal(t, "Consultation: Visa & Residence Permit", cal.Query().Get("text"))
	assert.Equal(t, "WhatsApp Video Call", cal.Query().Get("location"))

	require.True(t, strings.HasPrefix(conf.WhatsAppURL, "https://wa.me/4917655382575?text="))
	wa, err := url.Parse(conf.WhatsAppURL)
	require.NoError(t, err)
	assert.Equal(t,
		"Hi, I'm confirming my 'Visa & Residence Permit' consultation for Monday, March 10, 2025 at 09:00. My name is Anna.",
		wa.Query().Get("text"))
}

func TestNewConfirmedAppointment_LocalZone(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	booking := Booking{CustomerName: "Anna", DateKey: "2025-03-10", TimeSlot: "14:00", ServiceTitle: "x"}

	conf, err := NewConfirmedAppointment(booking, "+491761234567", "4917655382575", berlin)
	require.NoError(t, err)

	cal, err := url.Parse(conf.CalendarEventURL)
	require.NoError(t, err)
	assert.Equal(t, "20250310T130000Z/20250310T133000Z", cal.Query().Get("dates"))
}
