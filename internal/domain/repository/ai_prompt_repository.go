// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"task-prompt-api/internal/domain/entity"
)

// AIPromptRepository 提示词模板仓储接口
type AIPromptRepository interface {
	// List 按 ID 顺序列出全部模板
	List(ctx context.Context) ([]*entity.AIPrompt, error)

	// GetByID 根据 ID 获取模板，不存在时返回 nil, nil
	GetByID(ctx context.Context, id int64) (*entity.AIPrompt, error)

	// Upsert 按名称插入或更新模板
	Upsert(ctx context.Context, prompt *entity.AIPrompt) error
}

// TaskPromptRepository 提示词应用结果仓储接口
type TaskPromptRepository interface {
	// Create 保存结果
	Create(ctx context.Context, tp *entity.TaskPrompt) error

	// ListByTask 按时间顺序列出任务的结果
	ListByTask(ctx context.Context, taskID string) ([]*entity.TaskPrompt, error)
}
