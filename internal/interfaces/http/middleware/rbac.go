// Package middleware 提供 HTTP 中间件
package middleware

import (
	apperrors "task-prompt-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

// RequireAdmin 管理员权限检查中间件，须在 Auth 之后使用
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextKeyIsAdmin) {
			abortWithError(c, apperrors.ErrForbidden.WithDetail("admin privileges required"))
			return
		}
		c.Next()
	}
}
