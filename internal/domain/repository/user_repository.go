// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"task-prompt-api/internal/domain/entity"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	// Create 创建用户
	Create(ctx context.Context, user *entity.User) error

	// GetByID 根据 ID 获取用户，不存在时返回 nil, nil
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail 检查邮箱是否存在
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List 获取用户列表
	List(ctx context.Context, pagination Pagination) ([]*entity.User, error)

	// Delete 删除用户及其任务、结果与积分流水
	Delete(ctx context.Context, id string) error

	// UpdateLastLogin 更新最后登录时间
	UpdateLastLogin(ctx context.Context, id string) error

	// LockForUpdate 在当前事务内锁定用户行，用于串行化同一用户的扣费
	LockForUpdate(ctx context.Context, id string) error
}
