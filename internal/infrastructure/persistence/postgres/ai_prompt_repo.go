// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-prompt-api/internal/domain/entity"
)

// AIPromptRepository 提示词模板仓储实现
type AIPromptRepository struct {
	client *Client
}

// NewAIPromptRepository 创建提示词模板仓储
func NewAIPromptRepository(client *Client) *AIPromptRepository {
	return &AIPromptRepository{client: client}
}

// List 按 ID 顺序列出全部模板
func (r *AIPromptRepository) List(ctx context.Context) ([]*entity.AIPrompt, error) {
	ctx, span := tracer.Start(ctx, "postgres.AIPromptRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var prompts []*entity.AIPrompt
	if err := db.Order("id ASC").Find(&prompts).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	return prompts, nil
}

// GetByID 根据 ID 获取模板
func (r *AIPromptRepository) GetByID(ctx context.Context, id int64) (*entity.AIPrompt, error) {
	ctx, span := tracer.Start(ctx, "postgres.AIPromptRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var prompt entity.AIPrompt
	if err := db.First(&prompt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}
	return &prompt, nil
}

// Upsert 按名称插入或更新模板
func (r *AIPromptRepository) Upsert(ctx context.Context, prompt *entity.AIPrompt) error {
	ctx, span := tracer.Start(ctx, "postgres.AIPromptRepository.Upsert")
	defer span.End()

	db := getDB(ctx, r.client.db)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "cost", "prompt_template", "returns_json"}),
	}).Create(prompt).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upsert prompt %s: %w", prompt.Name, err)
	}
	return nil
}
