// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"fmt"
	"strconv"

	"task-prompt-api/internal/domain/repository"

	"github.com/gin-gonic/gin"
)

// BindPagination 从查询参数绑定 skip/limit，limit 收敛到 [1, 100]
func BindPagination(c *gin.Context) (repository.Pagination, error) {
	skip, err := parseIntWithDefault(c.Query("skip"), 0)
	if err != nil {
		return repository.Pagination{}, fmt.Errorf("skip: %w", err)
	}
	limit, err := parseIntWithDefault(c.Query("limit"), repository.DefaultLimit)
	if err != nil {
		return repository.Pagination{}, fmt.Errorf("limit: %w", err)
	}
	return repository.NewPagination(skip, limit), nil
}

// parseIntWithDefault 解析整数，空值返回默认值
func parseIntWithDefault(s string, defaultVal int) (int, error) {
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

// BindTaskID 从 URI 绑定任务 ID
func BindTaskID(c *gin.Context) string {
	return c.Param("id")
}

// BindUserID 从 URI 绑定用户 ID
func BindUserID(c *gin.Context) string {
	return c.Param("id")
}

// BindPromptID 从 URI 绑定提示词 ID
func BindPromptID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("prompt_id"), 10, 64)
}
