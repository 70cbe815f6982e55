// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"task-prompt-api/internal/domain/entity"
)

// GrantCreditsRequest 充值请求
type GrantCreditsRequest struct {
	Amount     int64   `json:"amount" binding:"required"`
	PaymentRef *string `json:"payment_ref" binding:"omitempty,max=255"`
}

// CreditResponse 积分流水响应
type CreditResponse struct {
	ID           string    `json:"id"`
	Amount       int64     `json:"amount"`
	Date         time.Time `json:"date"`
	PaymentRef   *string   `json:"payment_ref"`
	TaskPromptID *string   `json:"task_prompt_id"`
}

// ToCreditResponse 实体转换为响应
func ToCreditResponse(t *entity.CreditTransaction) *CreditResponse {
	return &CreditResponse{
		ID:           t.ID,
		Amount:       t.Amount,
		Date:         t.Date,
		PaymentRef:   t.PaymentRef,
		TaskPromptID: t.TaskPromptID,
	}
}

// ToCreditListResponse 实体列表转换为响应
func ToCreditListResponse(txns []*entity.CreditTransaction) []*CreditResponse {
	items := make([]*CreditResponse, len(txns))
	for i, t := range txns {
		items[i] = ToCreditResponse(t)
	}
	return items
}

// CreditBalanceResponse 余额响应
type CreditBalanceResponse struct {
	CreditBalance int64 `json:"credit_balance"`
}

// GrantCreditsResponse 充值响应
type GrantCreditsResponse struct {
	Transaction   *CreditResponse `json:"transaction"`
	CreditBalance int64           `json:"credit_balance"`
}
