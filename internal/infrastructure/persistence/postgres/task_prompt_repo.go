// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"task-prompt-api/internal/domain/entity"
)

// TaskPromptRepository 提示词应用结果仓储实现
type TaskPromptRepository struct {
	client *Client
}

// NewTaskPromptRepository 创建结果仓储
func NewTaskPromptRepository(client *Client) *TaskPromptRepository {
	return &TaskPromptRepository{client: client}
}

// Create 保存结果
func (r *TaskPromptRepository) Create(ctx context.Context, tp *entity.TaskPrompt) error {
	ctx, span := tracer.Start(ctx, "postgres.TaskPromptRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(tp).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create task prompt: %w", err)
	}
	return nil
}

// ListByTask 按时间顺序列出任务的结果
func (r *TaskPromptRepository) ListByTask(ctx context.Context, taskID string) ([]*entity.TaskPrompt, error) {
	ctx, span := tracer.Start(ctx, "postgres.TaskPromptRepository.ListByTask")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var results []*entity.TaskPrompt
	if err := db.Where("task_id = ?", taskID).Order("date_added ASC").Find(&results).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list task prompts: %w", err)
	}
	return results, nil
}
