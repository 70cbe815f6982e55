// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"net/http"

	apperrors "task-prompt-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

// traceIDKey 由 middleware.TraceContext 写入
const traceIDKey = "trace_id"

// Response 统一响应结构
type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	ErrorCode string `json:"error_code,omitempty"`
	Details   string `json:"details,omitempty"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Error   *ErrorDetail `json:"error,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
}

// Success 返回成功响应
func Success[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, Response[T]{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
		TraceID: c.GetString(traceIDKey),
	})
}

// Created 返回创建成功响应 (201)
func Created[T any](c *gin.Context, data T) {
	c.JSON(http.StatusCreated, Response[T]{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
		TraceID: c.GetString(traceIDKey),
	})
}

// NoContent 返回无内容响应 (204)
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// NewErrorResponse 由 AppError 构造错误响应体
func NewErrorResponse(c *gin.Context, err *apperrors.AppError) ErrorResponse {
	return ErrorResponse{
		Code:    err.HTTPStatus,
		Message: err.Message,
		Error:   &ErrorDetail{ErrorCode: string(err.Code), Details: err.Detail},
		TraceID: c.GetString(traceIDKey),
	}
}

// AppError 按 AppError 输出错误响应
func AppError(c *gin.Context, err *apperrors.AppError) {
	c.JSON(err.HTTPStatus, NewErrorResponse(c, err))
}

// AbortWithAppError 中断后续处理并输出错误响应，供中间件使用
func AbortWithAppError(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, NewErrorResponse(c, err))
}
