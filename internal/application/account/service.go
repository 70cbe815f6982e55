// Package account 提供注册、登录与用户管理
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/domain/repository"
	apperrors "task-prompt-api/pkg/errors"
	"task-prompt-api/pkg/logger"
	"task-prompt-api/pkg/utils"
)

// TokenIssuer 签发访问令牌
type TokenIssuer interface {
	GenerateToken(userID, email, name string) (string, error)
}

// Service 账号服务
type Service struct {
	users  repository.UserRepository
	tokens TokenIssuer
}

// NewService 创建账号服务
func NewService(users repository.UserRepository, tokens TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// NewTokenIssuer 将 JWTManager 作为令牌签发器
func NewTokenIssuer(m *utils.JWTManager) TokenIssuer {
	return m
}

// Register 创建用户，邮箱已存在时返回 ErrConflict
func (s *Service) Register(ctx context.Context, email, name, password string, isAdmin bool) (*entity.User, error) {
	if len(password) < entity.MinPasswordLength {
		return nil, apperrors.ErrInvalidParam.WithDetail(fmt.Sprintf("password must be at least %d characters", entity.MinPasswordLength))
	}
	if len(password) > entity.MaxPasswordBytes {
		return nil, apperrors.ErrInvalidParam.WithDetail(fmt.Sprintf("password must be at most %d bytes", entity.MaxPasswordBytes))
	}
	user := entity.NewUser(email, name)
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return nil, apperrors.ErrInvalidParam.WithDetail("a valid email is required")
	}
	user.IsAdmin = isAdmin

	exists, err := s.users.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to check email")
	}
	if exists {
		return nil, emailTaken()
	}

	if err := user.SetPassword(password); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to hash password")
	}

	if err := s.users.Create(ctx, user); err != nil {
		// 并发注册由唯一索引兜底
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, emailTaken()
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create user")
	}

	logger.Info(ctx, "user registered", "user_id", user.ID, "is_admin", user.IsAdmin)
	return user, nil
}

func emailTaken() *apperrors.AppError {
	return apperrors.ErrConflict.WithDetail("email already registered")
}

// Authenticate 校验邮箱密码并签发令牌
// 用户不存在与密码错误返回同一错误
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := s.users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load user")
	}
	if user == nil || !user.CheckPassword(password) {
		logger.Warn(ctx, "login failed", "email", entity.NormalizeEmail(email))
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.CodeInternalError, "failed to issue token")
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn(ctx, "failed to update last login", "user_id", user.ID, "error", err.Error())
	}
	return user, token, nil
}

// Get 按 ID 获取用户
func (s *Service) Get(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get user")
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// List 分页列出用户
func (s *Service) List(ctx context.Context, page repository.Pagination) ([]*entity.User, error) {
	users, err := s.users.List(ctx, page)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list users")
	}
	return users, nil
}

// Delete 删除用户及其全部数据
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete user")
	}
	logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}

// EnsureAdmin 创建管理员账号，已存在时返回现有用户
func (s *Service) EnsureAdmin(ctx context.Context, email, name, password string) (*entity.User, bool, error) {
	existing, err := s.users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load user")
	}
	if existing != nil {
		return existing, false, nil
	}
	user, err := s.Register(ctx, email, name, password, true)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
