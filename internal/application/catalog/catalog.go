// Package catalog 提供只读的提示词模板目录
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/domain/repository"
	apperrors "task-prompt-api/pkg/errors"
	"task-prompt-api/pkg/logger"
)

const (
	cacheKeyAll     = "prompts:all"
	defaultCacheTTL = 10 * time.Minute
)

// Cache 读穿缓存，由 redis.Cache 实现
type Cache interface {
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
}

// Catalog 提示词目录
type Catalog struct {
	repo  repository.AIPromptRepository
	cache Cache
	ttl   time.Duration
}

// NewCatalog 创建提示词目录，cache 为 nil 时直接读库
func NewCatalog(repo repository.AIPromptRepository, cache Cache, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Catalog{repo: repo, cache: cache, ttl: ttl}
}

// List 按 ID 顺序列出全部模板
func (c *Catalog) List(ctx context.Context) ([]*entity.AIPrompt, error) {
	if c.cache == nil {
		return c.load(ctx)
	}

	data, err := c.cache.GetOrLoad(ctx, cacheKeyAll, c.ttl, func() (interface{}, error) {
		return c.load(ctx)
	})
	if err != nil {
		return nil, err
	}

	var prompts []*entity.AIPrompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		logger.Warn(ctx, "cached prompt catalog is corrupt, reloading", "error", err.Error())
		return c.load(ctx)
	}
	return prompts, nil
}

func (c *Catalog) load(ctx context.Context) ([]*entity.AIPrompt, error) {
	prompts, err := c.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load prompt catalog")
	}
	return prompts, nil
}

// Get 获取模板，不存在时返回 ErrPromptNotFound
func (c *Catalog) Get(ctx context.Context, id int64) (*entity.AIPrompt, error) {
	prompts, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range prompts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.ErrPromptNotFound.WithDetail(fmt.Sprintf("prompt %d does not exist", id))
}

// Fill 用任务描述替换模板占位符
func Fill(prompt *entity.AIPrompt, taskDescription string) string {
	return prompt.Fill(taskDescription)
}

// FillByID 按 ID 取模板并填充
func (c *Catalog) FillByID(ctx context.Context, id int64, taskDescription string) (string, error) {
	prompt, err := c.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return Fill(prompt, taskDescription), nil
}

// Seed 写入内置模板并使缓存失效，可重复执行
func (c *Catalog) Seed(ctx context.Context) (int, error) {
	prompts, err := DefaultPrompts()
	if err != nil {
		return 0, err
	}
	for _, p := range prompts {
		if err := c.repo.Upsert(ctx, p); err != nil {
			return 0, err
		}
	}
	c.Invalidate(ctx)
	return len(prompts), nil
}

// Invalidate 清除目录缓存，失败只记录日志
func (c *Catalog) Invalidate(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, cacheKeyAll); err != nil {
		logger.Warn(ctx, "failed to invalidate prompt catalog cache", "error", err.Error())
	}
}
