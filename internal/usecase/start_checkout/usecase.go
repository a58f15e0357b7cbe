package start_checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/consultation-booking/internal/domain"
	checkoutRepo "github.com/m04kA/consultation-booking/internal/infra/storage/checkout"
	"github.com/m04kA/consultation-booking/internal/integrations/stripecheckout"
	"github.com/m04kA/consultation-booking/internal/usecase/create_booking"
	"github.com/m04kA/consultation-booking/internal/usecase/get_available_slots"
	"github.com/m04kA/consultation-booking/pkg/metrics"
)

// UUIDTokens генерирует токены на основе UUID v4
type UUIDTokens struct{}

// NewToken возвращает новый токен
func (UUIDTokens) NewToken() string {
	return uuid.NewString()
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }

// UseCase use case запуска оплаты
type UseCase struct {
	slots        SlotsResolver
	prices       PriceProvider
	handoffs     HandoffRepository
	gateway      PaymentGateway
	committer    BookingCommitter
	metrics      Metrics
	tokens       TokenGenerator
	timeProvider TimeProvider
	findOption   func(id string) (domain.ConsultationOption, bool)
	options      Options
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slots SlotsResolver,
	prices PriceProvider,
	handoffs HandoffRepository,
	gateway PaymentGateway,
	committer BookingCommitter,
	metrics Metrics,
	options Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		slots:        slots,
		prices:       prices,
		handoffs:     handoffs,
		gateway:      gateway,
		committer:    committer,
		metrics:      metrics,
		tokens:       UUIDTokens{},
		timeProvider: realTime{},
		findOption:   domain.FindConsultation,
		options:      options,
		logger:       logger,
	}
}

// Execute сохраняет черновик и создает платежную сессию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("StartCheckout: validation failed: %v", err)
		return nil, err
	}
	draft := req.Draft
	draft.PaymentMethod = domain.PaymentMethodCard

	// 2. Консультация и ее платежный продукт
	option, ok := uc.findOption(draft.ServiceID)
	if !ok {
		uc.logger.Warn("StartCheckout: service id=%s not found", draft.ServiceID)
		return nil, ErrServiceNotFound
	}
	if domain.IsPlaceholderPaymentRef(option.PaymentProductRef) {
		uc.logger.Error("StartCheckout: service id=%s has placeholder payment reference %q", option.ID, option.PaymentProductRef)
		return nil, ErrPaymentConfiguration
	}

	// 3. Слот все еще предлагается
	available, err := uc.slots.Execute(ctx, &get_available_slots.Request{Date: draft.Date})
	if err != nil {
		uc.logger.Error("StartCheckout: failed to resolve slots for date=%s: %v", draft.Date, err)
		return nil, fmt.Errorf("%w: failed to resolve slots: %v", ErrInternal, err)
	}
	if !domain.ContainsSlot(available.Slots, draft.Time) {
		uc.logger.Warn("StartCheckout: slot date=%s time=%s is not offered", draft.Date, draft.Time)
		return nil, ErrSlotNotAvailable
	}

	// 4. Цена
	price, err := uc.prices.EffectivePrice(ctx, option)
	if err != nil {
		uc.logger.Error("StartCheckout: failed to get price for service id=%s: %v", option.ID, err)
		return nil, fmt.Errorf("%w: failed to get price: %v", ErrInternal, err)
	}
	amount, err := toMinorUnits(price)
	if err != nil {
		uc.logger.Error("StartCheckout: service id=%s: %v", option.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentConfiguration, err)
	}
	draft.Price = price

	// 5. Сохраняем черновик до ухода на оплату
	token := uc.tokens.NewToken()
	handoff := &checkoutRepo.Handoff{
		Draft:       draft,
		AmountMinor: amount,
		Currency:    uc.options.Currency,
		CreatedAt:   uc.timeProvider.Now(),
	}
	if err := uc.handoffs.Save(ctx, token, handoff); err != nil {
		uc.logger.Error("StartCheckout: failed to save handoff: %v", err)
		return nil, fmt.Errorf("%w: failed to save handoff: %v", ErrInternal, err)
	}

	// 6. Создаем платежную сессию
	appointment, err := json.Marshal(draft)
	if err != nil {
		uc.discard(ctx, token)
		return nil, fmt.Errorf("%w: encode draft: %v", ErrInternal, err)
	}

	result, err := uc.gateway.CreateCheckout(ctx, &stripecheckout.CheckoutRequest{
		AmountMinor:   amount,
		Currency:      uc.options.Currency,
		CustomerEmail: draft.Contact.Email,
		ProductRef:    option.PaymentProductRef,
		ProductName:   option.Title,
		HandoffToken:  token,
		Appointment:   string(appointment),
		SuccessURL:    uc.returnURL("success", token) + "&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     uc.returnURL("cancel", token),
	})
	if err != nil {
		uc.discard(ctx, token)
		uc.metrics.IncCheckout(metrics.CheckoutError)
		if errors.Is(err, stripecheckout.ErrNotConfigured) {
			uc.logger.Error("StartCheckout: payment provider is not configured")
			return nil, fmt.Errorf("%w: %v", ErrPaymentConfiguration, err)
		}
		uc.logger.Error("StartCheckout: payment provider failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	switch result.Outcome {
	case stripecheckout.OutcomeFailed:
		uc.discard(ctx, token)
		uc.metrics.IncCheckout(metrics.CheckoutDeclined)
		uc.logger.Warn("StartCheckout: payment declined: %s", result.Message)
		return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, result.Message)

	case stripecheckout.OutcomeSucceeded:
		uc.discard(ctx, token)
		uc.metrics.IncCheckout(metrics.CheckoutPaid)
		committed, err := uc.committer.Execute(ctx, &create_booking.Request{Draft: draft})
		if err != nil {
			return nil, err
		}
		return &Response{Outcome: OutcomeConfirmed, Token: token, Price: price, Booking: committed}, nil
	}

	// 7. Запоминаем сессию для проверки при возврате
	if err := uc.handoffs.AttachSession(ctx, token, result.SessionID); err != nil {
		uc.logger.Warn("StartCheckout: failed to attach session id=%s to handoff: %v", result.SessionID, err)
	}

	uc.metrics.IncCheckout(metrics.CheckoutRedirect)
	uc.logger.Info("StartCheckout: redirecting service=%s date=%s time=%s session=%s",
		option.ID, draft.Date, draft.Time, result.SessionID)

	return &Response{Outcome: OutcomeRedirect, Token: token, RedirectURL: result.RedirectURL, Price: price}, nil
}

func (uc *UseCase) returnURL(payment, token string) string {
	q := url.Values{}
	q.Set("payment", payment)
	q.Set("token", token)
	sep := "?"
	if strings.Contains(uc.options.ReturnURL, "?") {
		sep = "&"
	}
	return uc.options.ReturnURL + sep + q.Encode()
}

// discard удаляет черновик, если оплата не начнется
func (uc *UseCase) discard(ctx context.Context, token string) {
	if _, err := uc.handoffs.Consume(ctx, token); err != nil && !errors.Is(err, checkoutRepo.ErrHandoffNotFound) {
		uc.logger.Warn("StartCheckout: failed to discard handoff: %v", err)
	}
}
