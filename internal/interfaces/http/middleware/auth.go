// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"errors"
	"strings"

	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/interfaces/http/dto"
	apperrors "task-prompt-api/pkg/errors"
	"task-prompt-api/pkg/logger"
	"task-prompt-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// gin.Context 键
const (
	ContextKeyUserID  = "user_id"
	ContextKeyIsAdmin = "is_admin"
	ContextKeyUser    = "user"
)

// UserLoader 按 ID 加载用户
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// Auth 认证中间件
// 校验 Bearer Token 后从数据库重新加载用户，用户已删除时返回 401
func Auth(jwtManager *utils.JWTManager, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperrors.ErrTokenMissing)
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortWithError(c, apperrors.ErrTokenInvalid.WithDetail("invalid authorization format"))
			return
		}

		claims, err := jwtManager.ParseToken(strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, utils.ErrExpiredToken) {
				abortWithError(c, apperrors.ErrTokenExpired)
				return
			}
			abortWithError(c, apperrors.ErrTokenInvalid)
			return
		}

		ctx := c.Request.Context()
		user, err := users.GetByID(ctx, claims.UserID())
		if err != nil {
			logger.Error(ctx, "failed to load authenticated user", err)
			abortWithError(c, apperrors.ErrInternalError)
			return
		}
		if user == nil {
			abortWithError(c, apperrors.ErrUnauthorized.WithDetail("user no longer exists"))
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyIsAdmin, user.IsAdmin)
		c.Set(ContextKeyUser, user)
		c.Request = c.Request.WithContext(logger.WithContext(ctx, logger.UserIDKey, user.ID))

		c.Next()
	}
}

// GetUserIDFromGin 获取当前用户 ID
func GetUserIDFromGin(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

// GetUserFromGin 获取当前用户
func GetUserFromGin(c *gin.Context) *entity.User {
	if v, ok := c.Get(ContextKeyUser); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}

// abortWithError 终止请求并按 AppError 输出错误
func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	dto.AbortWithAppError(c, appErr)
}
