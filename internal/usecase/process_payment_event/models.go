package process_payment_event

// Result что было сделано с событием
type Result string

const (
	ResultCommitted Result = "committed"
	ResultExpired   Result = "expired"
	ResultIgnored   Result = "ignored"
)

// Request модель запроса
type Request struct {
	Payload   []byte
	Signature string // заголовок Stripe-Signature
}

// Response модель ответа
type Response struct {
	EventID string
	Result  Result
}
