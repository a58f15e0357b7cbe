package complete_checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	checkoutRepo "github.com/m04kA/consultation-booking/internal/infra/storage/checkout"
	"github.com/m04kA/consultation-booking/internal/usecase/create_booking"
)

type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }

// UseCase use case обработки возврата клиента со страницы оплаты
type UseCase struct {
	handoffs     HandoffRepository
	verifier     PaymentVerifier
	committer    BookingCommitter
	timeProvider TimeProvider
	options      Options
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	handoffs HandoffRepository,
	verifier PaymentVerifier,
	committer BookingCommitter,
	options Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		handoffs:     handoffs,
		verifier:     verifier,
		committer:    committer,
		timeProvider: realTime{},
		options:      options,
		logger:       logger,
	}
}

// Execute потребляет черновик по токену.
// cancel возвращает черновик на шаг оплаты, success фиксирует бронирование.
// Черновик хранится в хранилище документов, поэтому возврат переживает перезапуск процесса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CompleteCheckout: validation failed: %v", err)
		return nil, err
	}

	// 2. Забираем черновик (не более одного раза на токен)
	handoff, err := uc.handoffs.Consume(ctx, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, checkoutRepo.ErrHandoffNotFound):
			uc.logger.Warn("CompleteCheckout: handoff token=%s not found", req.Token)
			return nil, ErrHandoffNotFound
		case errors.Is(err, checkoutRepo.ErrHandoffCorrupt):
			uc.logger.Warn("CompleteCheckout: handoff token=%s is corrupt: %v", req.Token, err)
			return nil, ErrHandoffCorrupt
		default:
			uc.logger.Error("CompleteCheckout: failed to consume handoff: %v", err)
			return nil, fmt.Errorf("%w: failed to consume handoff: %v", ErrInternal, err)
		}
	}

	draft := handoff.Draft

	// 3. Вебхук уже зафиксировал оплаченное бронирование: отдаем подтверждение
	if handoff.Committed {
		uc.logger.Info("CompleteCheckout: token=%s already booked by payment webhook", req.Token)
		return uc.confirm(ctx, req.Token, handoff)
	}

	// 4. Проверяем срок жизни
	if uc.options.HandoffTTL > 0 && uc.timeProvider.Now().Sub(handoff.CreatedAt) > uc.options.HandoffTTL {
		uc.logger.Warn("CompleteCheckout: handoff token=%s expired (created %s)", req.Token, handoff.CreatedAt.Format(time.RFC3339))
		return nil, ErrHandoffExpired
	}

	// 5. Отмена оплаты: вернуть черновик на шаг оплаты
	if req.Payment == PaymentCancel {
		uc.logger.Info("CompleteCheckout: payment cancelled for token=%s", req.Token)
		return &Response{NextStep: NextStepPayment, Draft: draft}, nil
	}

	// 6. Проверяем оплату у провайдера; без идентификатора сессии оплата не подтверждена
	if uc.options.VerifyPayment {
		sessionID := handoff.SessionID
		if sessionID == "" {
			sessionID = req.SessionID
		}
		if sessionID == "" {
			uc.logger.Warn("CompleteCheckout: token=%s has no payment session to verify", req.Token)
			uc.restore(ctx, req.Token, handoff)
			return nil, &DraftPreservedError{Cause: ErrPaymentNotCompleted, Draft: draft}
		}
		paid, err := uc.verifier.CheckoutPaid(ctx, sessionID)
		if err != nil {
			uc.logger.Error("CompleteCheckout: failed to verify session id=%s: %v", sessionID, err)
			uc.restore(ctx, req.Token, handoff)
			return nil, &DraftPreservedError{Cause: fmt.Errorf("%w: %v", ErrPaymentProvider, err), Draft: draft}
		}
		if !paid {
			uc.logger.Warn("CompleteCheckout: session id=%s is not paid", sessionID)
			uc.restore(ctx, req.Token, handoff)
			return nil, &DraftPreservedError{Cause: ErrPaymentNotCompleted, Draft: draft}
		}
	}

	return uc.confirm(ctx, req.Token, handoff)
}

// confirm фиксирует бронирование (повтор безопасен) и возвращает подтверждение
func (uc *UseCase) confirm(ctx context.Context, token string, handoff *checkoutRepo.Handoff) (*Response, error) {
	draft := handoff.Draft
	committed, err := uc.committer.Execute(ctx, &create_booking.Request{Draft: draft})
	if err != nil {
		if errors.Is(err, create_booking.ErrInternal) {
			uc.restore(ctx, token, handoff)
			return nil, &DraftPreservedError{Cause: err, Draft: draft}
		}
		uc.logger.Error("CompleteCheckout: paid booking token=%s could not be committed: %v", token, err)
		return nil, err
	}

	uc.logger.Info("CompleteCheckout: booking confirmed for token=%s (new=%t)", token, committed.Created)
	return &Response{NextStep: NextStepConfirmed, Draft: draft, Booking: committed}, nil
}

// restore возвращает черновик, чтобы клиент мог повторить возврат
func (uc *UseCase) restore(ctx context.Context, token string, h *checkoutRepo.Handoff) {
	if err := uc.handoffs.Restore(ctx, token, h); err != nil {
		uc.logger.Error("CompleteCheckout: failed to restore handoff token=%s: %v", token, err)
	}
}
