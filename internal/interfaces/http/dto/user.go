// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"task-prompt-api/internal/domain/entity"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"required,max=128"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UserResponse 用户响应
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	IsAdmin     bool       `json:"is_admin"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToUserResponse 实体转换为响应
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		IsAdmin:     u.IsAdmin,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToUserListResponse 实体列表转换为响应
func ToUserListResponse(users []*entity.User) []*UserResponse {
	items := make([]*UserResponse, len(users))
	for i, u := range users {
		items[i] = ToUserResponse(u)
	}
	return items
}
