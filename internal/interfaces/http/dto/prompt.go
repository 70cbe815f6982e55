// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"task-prompt-api/internal/application/promptapp"
	"task-prompt-api/internal/domain/entity"
)

// PromptResponse 提示词目录项，不暴露模板正文
type PromptResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int64  `json:"cost"`
	ReturnsJSON bool   `json:"returns_json"`
}

// ToPromptListResponse 实体列表转换为响应
func ToPromptListResponse(prompts []*entity.AIPrompt) []*PromptResponse {
	items := make([]*PromptResponse, len(prompts))
	for i, p := range prompts {
		items[i] = &PromptResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Cost:        p.Cost,
			ReturnsJSON: p.ReturnsJSON,
		}
	}
	return items
}

// TaskPromptResponse 提示词应用结果
type TaskPromptResponse struct {
	ID         string    `json:"id"`
	AIPromptID int64     `json:"ai_prompt_id"`
	Result     string    `json:"result"`
	DateAdded  time.Time `json:"date_added"`
}

// ToTaskPromptResponse 实体转换为响应
func ToTaskPromptResponse(tp *entity.TaskPrompt) *TaskPromptResponse {
	if tp == nil {
		return nil
	}
	return &TaskPromptResponse{
		ID:         tp.ID,
		AIPromptID: tp.AIPromptID,
		Result:     tp.Result,
		DateAdded:  tp.DateAdded,
	}
}

// ToTaskPromptListResponse 实体列表转换为响应
func ToTaskPromptListResponse(items []*entity.TaskPrompt) []*TaskPromptResponse {
	out := make([]*TaskPromptResponse, len(items))
	for i, tp := range items {
		out[i] = ToTaskPromptResponse(tp)
	}
	return out
}

// ApplyPromptResponse 应用提示词响应
type ApplyPromptResponse struct {
	Success       bool                `json:"success"`
	Message       *string             `json:"message"`
	TaskPrompt    *TaskPromptResponse `json:"task_prompt"`
	CreditBalance int64               `json:"credit_balance"`
}

// ToApplyPromptResponse 转换应用结果
func ToApplyPromptResponse(r *promptapp.ApplyResult) *ApplyPromptResponse {
	resp := &ApplyPromptResponse{
		Success:       r.Success,
		TaskPrompt:    ToTaskPromptResponse(r.TaskPrompt),
		CreditBalance: r.CreditBalance,
	}
	if r.Message != "" {
		msg := r.Message
		resp.Message = &msg
	}
	return resp
}
