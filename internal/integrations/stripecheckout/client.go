package stripecheckout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент Stripe Checkout
type Client struct {
	api           *client.API
	configured    bool
	webhookSecret string
	log           Logger
}

// NewClient создает клиента. Пустой secretKey допустим: все вызовы вернут ErrNotConfigured.
// backends позволяет направить запросы на тестовый сервер (nil - боевой API).
func NewClient(secretKey, webhookSecret string, backends *stripe.Backends, log Logger) *Client {
	api := &client.API{}
	api.Init(secretKey, backends)
	return &Client{
		api:           api,
		configured:    secretKey != "",
		webhookSecret: webhookSecret,
		log:           log,
	}
}

// CreateCheckout создает платежную сессию для одной консультации
func (c *Client) CreateCheckout(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(req.CustomerEmail),
		ClientReferenceID:  stripe.String(req.HandoffToken),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		LineItems:          []*stripe.CheckoutSessionLineItemParams{lineItem(req)},
	}
	params.Context = ctx
	params.AddMetadata(MetadataHandoffToken, req.HandoffToken)
	if req.Appointment != "" {
		params.AddMetadata(MetadataAppointment, req.Appointment)
	}

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			c.log.Warn("Stripe: checkout declined for token=%s: %s", req.HandoffToken, stripeErr.Msg)
			return &CheckoutResult{Outcome: OutcomeFailed, Message: stripeErr.Msg}, nil
		}
		return nil, fmt.Errorf("%w: create checkout session: %v", ErrProvider, err)
	}

	c.log.Info("Stripe: checkout session created id=%s token=%s", session.ID, req.HandoffToken)

	if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
		return &CheckoutResult{Outcome: OutcomeSucceeded, SessionID: session.ID}, nil
	}
	if session.URL == "" {
		return nil, fmt.Errorf("%w: session %s has no redirect url", ErrProvider, session.ID)
	}
	return &CheckoutResult{Outcome: OutcomeRedirect, SessionID: session.ID, RedirectURL: session.URL}, nil
}

// CheckoutPaid проверяет, оплачена ли сессия
func (c *Client) CheckoutPaid(ctx context.Context, sessionID string) (bool, error) {
	if !c.configured {
		return false, ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	session, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return false, fmt.Errorf("%w: get checkout session %s: %v", ErrProvider, sessionID, err)
	}
	return session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}

// lineItem: готовая цена Stripe (price_...) или цена из прайса поверх продукта
func lineItem(req *CheckoutRequest) *stripe.CheckoutSessionLineItemParams {
	if strings.HasPrefix(req.ProductRef, "price_") {
		return &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(req.ProductRef),
			Quantity: stripe.Int64(1),
		}
	}
	return &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(req.Currency),
			Product:    stripe.String(req.ProductRef),
			UnitAmount: stripe.Int64(req.AmountMinor),
		},
		Quantity: stripe.Int64(1),
	}
}
