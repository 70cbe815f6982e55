// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/lib/pq"
)

// 优先级取值：0 表示未设置，1 最高，6 最低
const (
	PriorityUnset   = 0
	PriorityHighest = 1
	PriorityLowest  = 6

	// unsetPriorityRank 未设置优先级的任务排在所有已设置的之后
	unsetPriorityRank = 7
)

// Task 任务实体
type Task struct {
	ID            string         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID       string         `json:"-" gorm:"type:uuid;index;not null"`
	Description   string         `json:"description" gorm:"type:text;not null"`
	Location      string         `json:"location" gorm:"type:varchar(255);not null;default:''"`
	Priority      int            `json:"priority" gorm:"not null;default:0"`
	DateDue       *time.Time     `json:"date_due"`
	DateCompleted *time.Time     `json:"date_completed"`
	Status        string         `json:"status" gorm:"type:varchar(50);not null;default:''"`
	Categories    pq.StringArray `json:"categories" gorm:"type:text[];not null;default:'{}'"`
	DateAdded     time.Time      `json:"date_added" gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Task) TableName() string {
	return "tasks"
}

// NewTask 创建新任务
func NewTask(ownerID, description string) *Task {
	now := time.Now()
	return &Task{
		OwnerID:     ownerID,
		Description: description,
		Categories:  pq.StringArray{},
		DateAdded:   now,
		UpdatedAt:   now,
	}
}

// IsCompleted 是否已完成
func (t *Task) IsCompleted() bool {
	return t.DateCompleted != nil
}

// HasCategory 是否包含指定分类
func (t *Task) HasCategory(category string) bool {
	for _, c := range t.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// PriorityRank 排序用的优先级
func (t *Task) PriorityRank() int {
	return PriorityRank(t.Priority)
}

// PriorityRank 将优先级映射为排序值，未设置的视为 7
func PriorityRank(priority int) int {
	if priority == PriorityUnset {
		return unsetPriorityRank
	}
	return priority
}

// ValidPriority 检查优先级是否在允许范围内
func ValidPriority(priority int) bool {
	return priority >= PriorityUnset && priority <= PriorityLowest
}
