// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"errors"
)

// TxKey 事务上下文键类型
type TxKey struct{}

// Transactor 事务管理接口
type Transactor interface {
	// WithTransaction 在事务中执行操作
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// 分页默认值
const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// Pagination 分页参数（skip/limit）
type Pagination struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// NewPagination 创建分页参数，limit 收敛到 [1, MaxLimit]
func NewPagination(skip, limit int) Pagination {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Skip: skip, Limit: limit}
}

// Offset 计算偏移量
func (p Pagination) Offset() int {
	return p.Skip
}

// 仓储层哨兵错误
var (
	ErrDuplicate = errors.New("duplicate record")
	ErrNotFound  = errors.New("record not found")
)
