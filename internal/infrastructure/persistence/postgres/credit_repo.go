// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"task-prompt-api/internal/domain/entity"
)

// CreditTransactionRepository 积分流水仓储实现
type CreditTransactionRepository struct {
	client *Client
}

// NewCreditTransactionRepository 创建积分流水仓储
func NewCreditTransactionRepository(client *Client) *CreditTransactionRepository {
	return &CreditTransactionRepository{client: client}
}

// Create 追加流水
func (r *CreditTransactionRepository) Create(ctx context.Context, tx *entity.CreditTransaction) error {
	ctx, span := tracer.Start(ctx, "postgres.CreditTransactionRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(tx).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create credit transaction: %w", err)
	}
	return nil
}

// SumByUser 计算用户余额
func (r *CreditTransactionRepository) SumByUser(ctx context.Context, userID string) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.CreditTransactionRepository.SumByUser")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var balance int64
	if err := db.Model(&entity.CreditTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID).
		Scan(&balance).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to sum credits: %w", err)
	}
	return balance, nil
}

// ListByUser 按时间顺序列出用户流水
func (r *CreditTransactionRepository) ListByUser(ctx context.Context, userID string) ([]*entity.CreditTransaction, error) {
	ctx, span := tracer.Start(ctx, "postgres.CreditTransactionRepository.ListByUser")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var txs []*entity.CreditTransaction
	if err := db.Where("user_id = ?", userID).Order("date ASC, id ASC").Find(&txs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list credit transactions: %w", err)
	}
	return txs, nil
}
