// Package entity 定义领域实体
package entity

import "time"

// CreditTransaction 积分流水，余额由流水求和得出
type CreditTransaction struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       string    `json:"-" gorm:"type:uuid;index;not null"`
	Amount       int64     `json:"amount" gorm:"not null"`
	Date         time.Time `json:"date" gorm:"autoCreateTime"`
	PaymentRef   *string   `json:"payment_ref" gorm:"type:varchar(255)"`
	TaskPromptID *string   `json:"task_prompt_id" gorm:"type:uuid"`
}

// TableName 指定表名
func (CreditTransaction) TableName() string {
	return "credit_transactions"
}

// NewCreditTransaction 创建积分流水
func NewCreditTransaction(userID string, amount int64, paymentRef, taskPromptID *string) *CreditTransaction {
	return &CreditTransaction{
		UserID:       userID,
		Amount:       amount,
		Date:         time.Now(),
		PaymentRef:   paymentRef,
		TaskPromptID: taskPromptID,
	}
}

// IsSpend 是否为消费流水
func (t *CreditTransaction) IsSpend() bool {
	return t.Amount < 0
}
