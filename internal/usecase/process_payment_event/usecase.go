package process_payment_event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/consultation-booking/internal/domain"
	checkoutRepo "github.com/m04kA/consultation-booking/internal/infra/storage/checkout"
	"github.com/m04kA/consultation-booking/internal/integrations/stripecheckout"
	"github.com/m04kA/consultation-booking/internal/usecase/create_booking"
)

// UseCase use case обработки вебхука платежного провайдера
type UseCase struct {
	parser    EventParser
	handoffs  HandoffRepository
	committer BookingCommitter
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(parser EventParser, handoffs HandoffRepository, committer BookingCommitter, logger Logger) *UseCase {
	return &UseCase{parser: parser, handoffs: handoffs, committer: committer, logger: logger}
}

// Execute проверяет событие и фиксирует оплаченное бронирование.
// Порядок с возвратом клиента любой: фиксация идемпотентна, черновик удаляет только возврат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Проверка подписи и разбор
	event, err := uc.parser.ParseEvent(req.Payload, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, stripecheckout.ErrUnsupportedEvent):
			uc.logger.Info("PaymentEvent: %v", err)
			return &Response{Result: ResultIgnored}, nil
		case errors.Is(err, stripecheckout.ErrInvalidSignature):
			uc.logger.Warn("PaymentEvent: %v", err)
			return nil, ErrInvalidSignature
		case errors.Is(err, stripecheckout.ErrNotConfigured):
			uc.logger.Error("PaymentEvent: webhook secret is not configured")
			return nil, ErrNotConfigured
		default:
			uc.logger.Warn("PaymentEvent: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}

	uc.logger.Info("PaymentEvent: id=%s type=%s session=%s", event.ID, event.Type, event.SessionID)

	switch event.Type {
	case stripecheckout.EventCheckoutExpired:
		// 2a. Сессия истекла: черновик больше не нужен
		if event.HandoffToken != "" {
			if _, err := uc.handoffs.Consume(ctx, event.HandoffToken); err != nil && !errors.Is(err, checkoutRepo.ErrHandoffNotFound) {
				uc.logger.Warn("PaymentEvent: failed to discard handoff token=%s: %v", event.HandoffToken, err)
			}
		}
		uc.logger.Info("PaymentEvent: session %s expired", event.SessionID)
		return &Response{EventID: event.ID, Result: ResultExpired}, nil

	case stripecheckout.EventCheckoutCompleted:
		if !event.Paid {
			uc.logger.Info("PaymentEvent: session %s completed without payment yet", event.SessionID)
			return &Response{EventID: event.ID, Result: ResultIgnored}, nil
		}
		return uc.commit(ctx, event)
	}

	return &Response{EventID: event.ID, Result: ResultIgnored}, nil
}

func (uc *UseCase) commit(ctx context.Context, event *stripecheckout.PaymentEvent) (*Response, error) {
	// 2b. Черновик из хранилища, иначе из метаданных сессии
	draft, fromHandoff, err := uc.resolveDraft(ctx, event)
	if err != nil {
		uc.logger.Error("PaymentEvent: paid session %s has no usable appointment details: %v", event.SessionID, err)
		return &Response{EventID: event.ID, Result: ResultIgnored}, nil
	}

	// 3. Фиксируем бронирование
	committed, err := uc.committer.Execute(ctx, &create_booking.Request{Draft: draft})
	if err != nil {
		if errors.Is(err, create_booking.ErrInternal) {
			// черновик не тронут, провайдер повторит доставку
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		uc.logger.Error("PaymentEvent: paid session %s could not be booked: %v", event.SessionID, err)
		return &Response{EventID: event.ID, Result: ResultIgnored}, nil
	}

	// 4. Отмечаем черновик: возврат клиента покажет подтверждение без повторной проверки оплаты
	if fromHandoff {
		if err := uc.handoffs.MarkCommitted(ctx, event.HandoffToken); err != nil && !errors.Is(err, checkoutRepo.ErrHandoffNotFound) {
			uc.logger.Warn("PaymentEvent: failed to mark handoff token=%s committed: %v", event.HandoffToken, err)
		}
	}

	uc.logger.Info("PaymentEvent: session %s booked date=%s time=%s (new=%t)",
		event.SessionID, committed.Booking.DateKey, committed.Booking.TimeSlot, committed.Created)
	return &Response{EventID: event.ID, Result: ResultCommitted}, nil
}

// resolveDraft читает черновик без удаления; второй результат true, если он найден в хранилище
func (uc *UseCase) resolveDraft(ctx context.Context, event *stripecheckout.PaymentEvent) (domain.AppointmentDraft, bool, error) {
	if event.HandoffToken != "" {
		handoff, err := uc.handoffs.Get(ctx, event.HandoffToken)
		if err == nil {
			return handoff.Draft, true, nil
		}
		if !errors.Is(err, checkoutRepo.ErrHandoffNotFound) {
			uc.logger.Warn("PaymentEvent: handoff token=%s unusable: %v", event.HandoffToken, err)
		}
	}

	if event.Appointment == "" {
		return domain.AppointmentDraft{}, false, errors.New("no appointment metadata")
	}
	var draft domain.AppointmentDraft
	if err := json.Unmarshal([]byte(event.Appointment), &draft); err != nil {
		return domain.AppointmentDraft{}, false, fmt.Errorf("decode appointment metadata: %w", err)
	}
	return draft, false, nil
}
