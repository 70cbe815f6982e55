// Package entity 定义领域实体
package entity

import "strings"

// TaskDescriptionPlaceholder 模板中的任务描述占位符
const TaskDescriptionPlaceholder = "{task_description}"

// AIPrompt 提示词模板实体
type AIPrompt struct {
	ID             int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description    string `json:"description" gorm:"type:text;not null;default:''"`
	Cost           int64  `json:"cost" gorm:"not null"`
	PromptTemplate string `json:"prompt_template" gorm:"type:text;not null"`
	ReturnsJSON    bool   `json:"returns_json" gorm:"column:returns_json;not null;default:false"`
}

// TableName 指定表名
func (AIPrompt) TableName() string {
	return "ai_prompts"
}

// Fill 用任务描述替换模板中所有占位符，其余文本保持不变
func (p *AIPrompt) Fill(taskDescription string) string {
	return strings.ReplaceAll(p.PromptTemplate, TaskDescriptionPlaceholder, taskDescription)
}
