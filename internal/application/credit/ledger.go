// Package credit 提供积分账本，余额始终由流水求和得出
package credit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/domain/repository"
	"task-prompt-api/internal/domain/service"
	apperrors "task-prompt-api/pkg/errors"
	"task-prompt-api/pkg/logger"
	"task-prompt-api/pkg/metrics"
)

// UserLocker 在事务内锁定用户行
type UserLocker interface {
	LockForUpdate(ctx context.Context, id string) error
}

// Ledger 积分账本
type Ledger struct {
	repo   repository.CreditTransactionRepository
	locker UserLocker
	tx     repository.Transactor
	events service.EventPublisher
}

// NewLedger 创建积分账本
func NewLedger(
	repo repository.CreditTransactionRepository,
	locker UserLocker,
	tx repository.Transactor,
	events service.EventPublisher,
) *Ledger {
	if events == nil {
		events = service.NoopPublisher{}
	}
	return &Ledger{repo: repo, locker: locker, tx: tx, events: events}
}

// Balance 返回用户当前余额，无流水时为 0
func (l *Ledger) Balance(ctx context.Context, userID string) (int64, error) {
	balance, err := l.repo.SumByUser(ctx, userID)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to read credit balance")
	}
	return balance, nil
}

// Record 追加一条流水，amount 为负表示消费
func (l *Ledger) Record(ctx context.Context, userID string, amount int64, paymentRef, taskPromptID *string) (*entity.CreditTransaction, error) {
	txn := entity.NewCreditTransaction(userID, amount, paymentRef, taskPromptID)
	if err := l.repo.Create(ctx, txn); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to record credit transaction")
	}
	return txn, nil
}

// List 按时间顺序列出用户流水
func (l *Ledger) List(ctx context.Context, userID string) ([]*entity.CreditTransaction, error) {
	txns, err := l.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list credit transactions")
	}
	return txns, nil
}

// Grant 记录一次充值并返回充值后的余额
func (l *Ledger) Grant(ctx context.Context, userID string, amount int64, paymentRef *string) (*entity.CreditTransaction, int64, error) {
	if amount <= 0 {
		return nil, 0, apperrors.ErrInvalidAmount.WithDetail(fmt.Sprintf("got %d", amount))
	}

	var (
		txn     *entity.CreditTransaction
		balance int64
	)
	err := l.WithLockedBalance(ctx, userID, func(ctx context.Context, current int64) error {
		var err error
		txn, err = l.Record(ctx, userID, amount, paymentRef, nil)
		if err != nil {
			return err
		}
		balance = current + amount
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	metrics.CreditsGrantedTotal.Add(float64(amount))
	logger.Info(ctx, "credits granted", "user_id", userID, "amount", amount, "balance", balance)

	payload := map[string]any{
		"transaction_id": txn.ID,
		"amount":         amount,
		"balance":        balance,
	}
	if paymentRef != nil {
		payload["payment_ref"] = *paymentRef
	}
	l.publish(ctx, &service.DomainEvent{
		Type:       service.EventCreditGranted,
		UserID:     userID,
		OccurredAt: time.Now(),
		Payload:    payload,
	})
	return txn, balance, nil
}

// WithLockedBalance 在事务内锁定用户行并读取余额后执行 fn
// 同一用户的并发调用在此串行化，fn 返回错误时整体回滚
func (l *Ledger) WithLockedBalance(ctx context.Context, userID string, fn func(ctx context.Context, balance int64) error) error {
	return l.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := l.locker.LockForUpdate(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to lock user")
		}
		balance, err := l.Balance(ctx, userID)
		if err != nil {
			return err
		}
		return fn(ctx, balance)
	})
}

func (l *Ledger) publish(ctx context.Context, event *service.DomainEvent) {
	if err := l.events.Publish(ctx, event); err != nil {
		logger.Warn(ctx, "failed to publish event", "type", event.Type, "error", err.Error())
	}
}
