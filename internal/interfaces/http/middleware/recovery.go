package middleware

import (
	"fmt"
	"runtime/debug"

	"task-prompt-api/pkg/errors"
	"task-prompt-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery Panic 恢复中间件，响应统一的 500 错误体
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			logger.Error(c.Request.Context(), "panic recovered",
				fmt.Errorf("%v", recovered),
				"stack", string(debug.Stack()),
				"route", c.FullPath(),
				"method", c.Request.Method,
				"user_id", c.GetString(ContextKeyUserID),
			)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			abortWithError(c, errors.ErrInternalError)
		}()

		c.Next()
	}
}
