// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/domain/repository"
)

// UserRepository 用户仓储实现
type UserRepository struct {
	client *Client
}

// NewUserRepository 创建用户仓储
func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client}
}

// Create 创建用户
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	ctx, span := tracer.Start(ctx, "postgres.UserRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(user).Error; err != nil {
		span.RecordError(err)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取用户
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	ctx, span := tracer.Start(ctx, "postgres.UserRepository.GetByID")
	defer span.End()

	if !validID(id) {
		return nil, nil
	}

	db := getDB(ctx, r.client.db)
	var user entity.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	ctx, span := tracer.Start(ctx, "postgres.UserRepository.GetByEmail")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var user entity.User
	if err := db.First(&user, "email = ?", entity.NormalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// ExistsByEmail 检查邮箱是否存在
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.UserRepository.ExistsByEmail")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", entity.NormalizeEmail(email)).Count(&count).Error; err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

// List 获取用户列表
func (r *UserRepository) List(ctx context.Context, pagination repository.Pagination) ([]*entity.User, error) {
	ctx, span := tracer.Start(ctx, "postgres.UserRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var users []*entity.User
	if err := db.Order("created_at ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&users).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Delete 删除用户，在一个事务内显式清理其流水、结果与任务
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.UserRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&entity.CreditTransaction{}).Error; err != nil {
			return fmt.Errorf("delete credit transactions: %w", err)
		}
		owned := tx.Model(&entity.Task{}).Select("id").Where("owner_id = ?", id)
		if err := tx.Where("task_id IN (?)", owned).Delete(&entity.TaskPrompt{}).Error; err != nil {
			return fmt.Errorf("delete task prompts: %w", err)
		}
		if err := tx.Where("owner_id = ?", id).Delete(&entity.Task{}).Error; err != nil {
			return fmt.Errorf("delete tasks: %w", err)
		}
		if err := tx.Delete(&entity.User{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete user row: %w", err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// UpdateLastLogin 更新最后登录时间
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.UserRepository.UpdateLastLogin")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.User{}).Where("id = ?", id).
		UpdateColumn("last_login_at", time.Now()).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// LockForUpdate 锁定用户行，必须在事务中调用
func (r *UserRepository) LockForUpdate(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.UserRepository.LockForUpdate")
	defer span.End()

	if !validID(id) {
		return fmt.Errorf("lock user %s: %w", id, repository.ErrNotFound)
	}

	if getTxFromContext(ctx) == nil {
		return fmt.Errorf("lock user %s: no transaction in context", id)
	}

	db := getDB(ctx, r.client.db)
	var locked []string
	if err := db.Raw("SELECT id FROM users WHERE id = ? FOR UPDATE", id).Scan(&locked).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to lock user: %w", err)
	}
	if len(locked) == 0 {
		return fmt.Errorf("lock user %s: %w", id, repository.ErrNotFound)
	}
	return nil
}
