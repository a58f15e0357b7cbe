package stripecheckout

// Outcome результат создания платежной сессии
type Outcome string

const (
	// OutcomeRedirect клиента нужно отправить на RedirectURL
	OutcomeRedirect Outcome = "redirect"
	// OutcomeSucceeded оплата прошла сразу (сессия уже оплачена)
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeFailed провайдер отклонил оплату
	OutcomeFailed Outcome = "failed"
)

// Metadata ключи метаданных сессии
const (
	MetadataHandoffToken = "handoff_token"
	MetadataAppointment  = "appointmentDetails"
)

// CheckoutRequest параметры создания сессии
type CheckoutRequest struct {
	AmountMinor   int64
	Currency      string
	CustomerEmail string
	ProductRef    string // price_... или prod_...
	ProductName   string
	HandoffToken  string
	Appointment   string // JSON черновика для вебхука
	SuccessURL    string
	CancelURL     string
}

// CheckoutResult созданная сессия
type CheckoutResult struct {
	Outcome     Outcome
	SessionID   string
	RedirectURL string
	Message     string
}

// EventType поддерживаемые события вебхука
type EventType string

const (
	EventCheckoutCompleted EventType = "checkout.session.completed"
	EventCheckoutExpired   EventType = "checkout.session.expired"
)

// PaymentEvent разобранное событие вебхука
type PaymentEvent struct {
	ID           string
	Type         EventType
	SessionID    string
	Paid         bool
	HandoffToken string
	Appointment  string
}
