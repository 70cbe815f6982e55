// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"strings"
	"time"

	"task-prompt-api/internal/domain/entity"
)

// TaskFilterKind 任务过滤类型
type TaskFilterKind string

const (
	TaskFilterNone         TaskFilterKind = ""
	TaskFilterToday        TaskFilterKind = "today"
	TaskFilterWeek         TaskFilterKind = "week"
	TaskFilterHighPriority TaskFilterKind = "high_priority"
	TaskFilterCompleted    TaskFilterKind = "completed"
	TaskFilterCategory     TaskFilterKind = "category"
	TaskFilterLocation     TaskFilterKind = "location"
)

// highPriorityCutoff high_priority 过滤包含的最低优先级
const highPriorityCutoff = 2

// TaskFilter 任务过滤条件
type TaskFilter struct {
	Kind  TaskFilterKind
	Value string
}

// ParseTaskFilter 解析 filter_name，未知名称视为无额外过滤
func ParseTaskFilter(name string) TaskFilter {
	name = strings.TrimSpace(name)
	switch TaskFilterKind(name) {
	case TaskFilterToday, TaskFilterWeek, TaskFilterHighPriority, TaskFilterCompleted:
		return TaskFilter{Kind: TaskFilterKind(name)}
	}
	if kind, value, ok := strings.Cut(name, ":"); ok && value != "" {
		switch TaskFilterKind(kind) {
		case TaskFilterCategory, TaskFilterLocation:
			return TaskFilter{Kind: TaskFilterKind(kind), Value: value}
		}
	}
	return TaskFilter{Kind: TaskFilterNone}
}

// IncludesCompleted 只有 completed 过滤返回已完成任务
func (f TaskFilter) IncludesCompleted() bool {
	return f.Kind == TaskFilterCompleted
}

// DueWindow 返回 today/week 过滤的截止时间区间 [start, end)
func (f TaskFilter) DueWindow(now time.Time) (start, end time.Time, ok bool) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch f.Kind {
	case TaskFilterToday:
		return dayStart, dayStart.AddDate(0, 0, 1), true
	case TaskFilterWeek:
		return dayStart, dayStart.AddDate(0, 0, 7), true
	}
	return time.Time{}, time.Time{}, false
}

// Matches 判断任务是否满足过滤条件，供内存实现和测试使用
func (f TaskFilter) Matches(t *entity.Task, now time.Time) bool {
	if t.IsCompleted() != f.IncludesCompleted() {
		return false
	}
	if start, end, ok := f.DueWindow(now); ok {
		return t.DateDue != nil && !t.DateDue.Before(start) && t.DateDue.Before(end)
	}
	switch f.Kind {
	case TaskFilterHighPriority:
		return t.Priority >= entity.PriorityHighest && t.Priority <= highPriorityCutoff
	case TaskFilterCategory:
		return t.HasCategory(f.Value)
	case TaskFilterLocation:
		return t.Location == f.Value
	}
	return true
}

// HighPriorityRange high_priority 过滤对应的优先级区间
func HighPriorityRange() (low, high int) {
	return entity.PriorityHighest, highPriorityCutoff
}

// TaskSort 任务排序键
type TaskSort string

const (
	TaskSortDateAdded   TaskSort = "date_added"
	TaskSortDateDue     TaskSort = "date_due"
	TaskSortPriority    TaskSort = "priority"
	TaskSortDescription TaskSort = "description"
	TaskSortStatus      TaskSort = "status"
)

// ParseTaskSort 解析排序键，空值使用 date_added
func ParseTaskSort(s string) (TaskSort, bool) {
	switch TaskSort(strings.TrimSpace(s)) {
	case "", TaskSortDateAdded:
		return TaskSortDateAdded, true
	case TaskSortDateDue:
		return TaskSortDateDue, true
	case TaskSortPriority:
		return TaskSortPriority, true
	case TaskSortDescription:
		return TaskSortDescription, true
	case TaskSortStatus:
		return TaskSortStatus, true
	}
	return "", false
}

// TaskQuery 任务列表查询
type TaskQuery struct {
	Filter     TaskFilter
	Sort       TaskSort
	Pagination Pagination
	Now        time.Time
}

// TaskRepository 任务仓储接口
type TaskRepository interface {
	// Create 创建任务
	Create(ctx context.Context, task *entity.Task) error

	// GetByIDForOwner 按 ID 与所有者获取任务，不存在或不属于该用户时返回 nil, nil
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Task, error)

	// ListByOwner 获取用户的任务列表
	ListByOwner(ctx context.Context, ownerID string, query TaskQuery) ([]*entity.Task, error)

	// Update 更新任务
	Update(ctx context.Context, task *entity.Task) error

	// DeleteForOwner 删除任务，返回是否删除了记录
	DeleteForOwner(ctx context.Context, id, ownerID string) (bool, error)
}
