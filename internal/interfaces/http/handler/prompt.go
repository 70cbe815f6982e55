// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"

	"task-prompt-api/internal/application/promptapp"
	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/interfaces/http/dto"
	"task-prompt-api/internal/interfaces/http/middleware"
	"task-prompt-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

// PromptLister 列出提示词目录
type PromptLister interface {
	List(ctx context.Context) ([]*entity.AIPrompt, error)
}

// PromptApplier 应用提示词
type PromptApplier interface {
	Apply(ctx context.Context, userID, taskID string, promptID int64) (*promptapp.ApplyResult, error)
}

// PromptHandler 提示词处理器
type PromptHandler struct {
	catalog PromptLister
	applier PromptApplier
}

// NewPromptHandler 创建提示词处理器
func NewPromptHandler(catalog PromptLister, applier PromptApplier) *PromptHandler {
	return &PromptHandler{catalog: catalog, applier: applier}
}

// ListPrompts 提示词目录
// @Summary 提示词目录
// @Tags Prompts
// @Produce json
// @Success 200 {object} dto.Response[[]dto.PromptResponse]
// @Router /prompts [get]
func (h *PromptHandler) ListPrompts(c *gin.Context) {
	prompts, err := h.catalog.List(c.Request.Context())
	if err != nil {
		handleError(c, err, "failed to list prompts")
		return
	}
	dto.Success(c, dto.ToPromptListResponse(prompts))
}

// ApplyPrompt 将提示词应用到任务
// @Summary 应用提示词
// @Description 余额不足时返回 success=false，生成失败返回 502 且不扣费
// @Tags Prompts
// @Produce json
// @Param prompt_id path int true "提示词 ID"
// @Param task_id path string true "任务 ID"
// @Success 200 {object} dto.ApplyPromptResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /prompts/{prompt_id}/apply/{task_id} [post]
func (h *PromptHandler) ApplyPrompt(c *gin.Context) {
	promptID, err := dto.BindPromptID(c)
	if err != nil {
		dto.AppError(c, errors.ErrPromptNotFound)
		return
	}

	result, err := h.applier.Apply(c.Request.Context(), middleware.GetUserIDFromGin(c), c.Param("task_id"), promptID)
	if err != nil {
		handleError(c, err, "failed to apply prompt")
		return
	}
	// 与 /token 一样直接返回结果对象，不套统一响应外壳
	c.JSON(http.StatusOK, dto.ToApplyPromptResponse(result))
}
