// Package handler 提供 HTTP 请求处理器
package handler

import (
	"task-prompt-api/internal/interfaces/http/dto"
	"task-prompt-api/pkg/errors"
	"task-prompt-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// handleError 将错误映射为统一错误响应，5xx 记录日志
func handleError(c *gin.Context, err error, msg string) {
	appErr := errors.AsAppError(err)
	if appErr.HTTPStatus >= 500 {
		logger.Error(c.Request.Context(), msg, err)
	}
	if appErr.Code == errors.CodeUnknown {
		appErr = errors.ErrInternalError
	}
	dto.AppError(c, appErr)
}

// bindError 请求体校验失败
func bindError(c *gin.Context, err error) {
	dto.AppError(c, errors.ErrInvalidParam.WithDetail(err.Error()))
}
