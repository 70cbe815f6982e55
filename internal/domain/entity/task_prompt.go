// Package entity 定义领域实体
package entity

import "time"

// TaskPrompt 提示词应用结果
type TaskPrompt struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TaskID     string    `json:"task_id" gorm:"type:uuid;index;not null"`
	AIPromptID int64     `json:"ai_prompt_id" gorm:"column:ai_prompt_id;not null"`
	Result     string    `json:"result" gorm:"type:text;not null"`
	DateAdded  time.Time `json:"date_added" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (TaskPrompt) TableName() string {
	return "task_prompts"
}

// NewTaskPrompt 创建提示词应用结果
func NewTaskPrompt(taskID string, promptID int64, result string) *TaskPrompt {
	return &TaskPrompt{
		TaskID:     taskID,
		AIPromptID: promptID,
		Result:     result,
		DateAdded:  time.Now(),
	}
}
