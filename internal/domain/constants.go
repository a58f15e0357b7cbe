package domain

// Booking constants
const (
	SlotDurationMinutes = 30
	BookingsPageSize    = 10
	MaxNameLength       = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Payment methods
const (
	PaymentMethodCard = "card"
)

// Document keys of the persisted state
const (
	KeyPrices             = "consultationPrices"
	KeyDateOverrides      = "appointmentAvailability"
	KeyWeeklyTemplate     = "recurringAppointmentAvailability"
	KeyConfirmedBookings  = "confirmedBookings"
	KeyCheckoutHandoffPfx = "checkoutAppointmentDetails:"
)
