// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"task-prompt-api/internal/domain/entity"
)

// CreditTransactionRepository 积分流水仓储接口
type CreditTransactionRepository interface {
	// Create 追加流水
	Create(ctx context.Context, tx *entity.CreditTransaction) error

	// SumByUser 计算用户余额，无流水时为 0
	SumByUser(ctx context.Context, userID string) (int64, error)

	// ListByUser 按时间顺序列出用户流水
	ListByUser(ctx context.Context, userID string) ([]*entity.CreditTransaction, error)
}
