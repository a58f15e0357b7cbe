package stripecheckout

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// ParseEvent проверяет подпись и разбирает событие checkout.session.*
func (c *Client) ParseEvent(payload []byte, signatureHeader string) (*PaymentEvent, error) {
	if c.webhookSecret == "" {
		return nil, ErrNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	eventType := EventType(event.Type)
	if eventType != EventCheckoutCompleted && eventType != EventCheckoutExpired {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEvent, event.Type)
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	token := session.Metadata[MetadataHandoffToken]
	if token == "" {
		token = session.ClientReferenceID
	}

	return &PaymentEvent{
		ID:           event.ID,
		Type:         eventType,
		SessionID:    session.ID,
		Paid:         session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		HandoffToken: token,
		Appointment:  session.Metadata[MetadataAppointment],
	}, nil
}
