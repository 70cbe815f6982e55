// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"

	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/interfaces/http/dto"
	"task-prompt-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
)

// CreditReader 读取积分余额与流水
type CreditReader interface {
	Balance(ctx context.Context, userID string) (int64, error)
	List(ctx context.Context, userID string) ([]*entity.CreditTransaction, error)
}

// CreditHandler 积分处理器
type CreditHandler struct {
	credits CreditReader
}

// NewCreditHandler 创建积分处理器
func NewCreditHandler(credits CreditReader) *CreditHandler {
	return &CreditHandler{credits: credits}
}

// ListCredits 当前用户的积分流水
func (h *CreditHandler) ListCredits(c *gin.Context) {
	txns, err := h.credits.List(c.Request.Context(), middleware.GetUserIDFromGin(c))
	if err != nil {
		handleError(c, err, "failed to list credits")
		return
	}
	dto.Success(c, dto.ToCreditListResponse(txns))
}

// Balance 当前用户的积分余额
func (h *CreditHandler) Balance(c *gin.Context) {
	balance, err := h.credits.Balance(c.Request.Context(), middleware.GetUserIDFromGin(c))
	if err != nil {
		handleError(c, err, "failed to get credit balance")
		return
	}
	dto.Success(c, &dto.CreditBalanceResponse{CreditBalance: balance})
}
