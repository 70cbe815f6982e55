// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"github.com/lib/pq"

	"task-prompt-api/internal/domain/entity"
)

// TaskRequest 创建与更新任务请求
// PUT 使用同一结构整体覆盖，未提供的字段回到默认值
type TaskRequest struct {
	Description   string     `json:"description" binding:"required"`
	Location      string     `json:"location" binding:"max=255"`
	Priority      int        `json:"priority" binding:"min=0,max=6"`
	DateDue       *time.Time `json:"date_due"`
	DateCompleted *time.Time `json:"date_completed"`
	Status        string     `json:"status" binding:"max=50"`
	Categories    []string   `json:"categories"`
}

// ToTaskEntity 创建任务实体
func (r *TaskRequest) ToTaskEntity(ownerID string) *entity.Task {
	task := entity.NewTask(ownerID, r.Description)
	r.ApplyTo(task)
	return task
}

// ApplyTo 逐字段覆盖任务
func (r *TaskRequest) ApplyTo(task *entity.Task) {
	task.Description = r.Description
	task.Location = r.Location
	task.Priority = r.Priority
	task.DateDue = r.DateDue
	task.DateCompleted = r.DateCompleted
	task.Status = r.Status
	task.Categories = pq.StringArray(r.Categories)
	if task.Categories == nil {
		task.Categories = pq.StringArray{}
	}
}

// TaskResponse 任务响应
type TaskResponse struct {
	ID            string     `json:"id"`
	Description   string     `json:"description"`
	Location      string     `json:"location"`
	Priority      int        `json:"priority"`
	DateDue       *time.Time `json:"date_due"`
	DateCompleted *time.Time `json:"date_completed"`
	Status        string     `json:"status"`
	Categories    []string   `json:"categories"`
	DateAdded     time.Time  `json:"date_added"`
}

// ToTaskResponse 实体转换为响应
func ToTaskResponse(t *entity.Task) *TaskResponse {
	if t == nil {
		return nil
	}
	categories := []string(t.Categories)
	if categories == nil {
		categories = []string{}
	}
	return &TaskResponse{
		ID:            t.ID,
		Description:   t.Description,
		Location:      t.Location,
		Priority:      t.Priority,
		DateDue:       t.DateDue,
		DateCompleted: t.DateCompleted,
		Status:        t.Status,
		Categories:    categories,
		DateAdded:     t.DateAdded,
	}
}

// ToTaskListResponse 实体列表转换为响应
func ToTaskListResponse(tasks []*entity.Task) []*TaskResponse {
	items := make([]*TaskResponse, len(tasks))
	for i, t := range tasks {
		items[i] = ToTaskResponse(t)
	}
	return items
}
