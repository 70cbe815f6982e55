// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/domain/repository"
)

// taskOrderClauses 排序键对应的 ORDER BY，date_added 作为稳定的次序
var taskOrderClauses = map[repository.TaskSort]string{
	repository.TaskSortDateAdded:   "date_added ASC, id ASC",
	repository.TaskSortDateDue:     "date_due ASC NULLS LAST, date_added ASC",
	repository.TaskSortPriority:    "CASE priority WHEN 0 THEN 7 ELSE priority END ASC, date_added ASC",
	repository.TaskSortDescription: "description ASC, date_added ASC",
	repository.TaskSortStatus:      "status ASC, date_added ASC",
}

// TaskRepository 任务仓储实现
type TaskRepository struct {
	client *Client
}

// NewTaskRepository 创建任务仓储
func NewTaskRepository(client *Client) *TaskRepository {
	return &TaskRepository{client: client}
}

// Create 创建任务
func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.Create")
	defer span.End()

	if task.Categories == nil {
		task.Categories = pq.StringArray{}
	}

	db := getDB(ctx, r.client.db)
	if err := db.Create(task).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByIDForOwner 按 ID 与所有者获取任务
func (r *TaskRepository) GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Task, error) {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.GetByIDForOwner")
	defer span.End()

	if !validID(id, ownerID) {
		return nil, nil
	}

	db := getDB(ctx, r.client.db)
	var task entity.Task
	if err := db.First(&task, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// ListByOwner 获取用户的任务列表
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string, query repository.TaskQuery) ([]*entity.Task, error) {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.ListByOwner")
	defer span.End()

	order, ok := taskOrderClauses[query.Sort]
	if !ok {
		order = taskOrderClauses[repository.TaskSortDateAdded]
	}

	db := getDB(ctx, r.client.db)
	q := applyTaskFilter(db.Model(&entity.Task{}).Where("owner_id = ?", ownerID), query)

	var tasks []*entity.Task
	if err := q.Order(order).
		Offset(query.Pagination.Offset()).
		Limit(query.Pagination.Limit).
		Find(&tasks).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// applyTaskFilter 将过滤条件翻译为 WHERE 子句
func applyTaskFilter(q *gorm.DB, query repository.TaskQuery) *gorm.DB {
	f := query.Filter
	if f.IncludesCompleted() {
		q = q.Where("date_completed IS NOT NULL")
	} else {
		q = q.Where("date_completed IS NULL")
	}

	if start, end, ok := f.DueWindow(query.Now); ok {
		return q.Where("date_due >= ? AND date_due < ?", start, end)
	}

	switch f.Kind {
	case repository.TaskFilterHighPriority:
		low, high := repository.HighPriorityRange()
		q = q.Where("priority BETWEEN ? AND ?", low, high)
	case repository.TaskFilterCategory:
		q = q.Where("? = ANY(categories)", f.Value)
	case repository.TaskFilterLocation:
		q = q.Where("location = ?", f.Value)
	}
	return q
}

// Update 更新任务
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) error {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.Update")
	defer span.End()

	if task.Categories == nil {
		task.Categories = pq.StringArray{}
	}

	db := getDB(ctx, r.client.db)
	if err := db.Save(task).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// DeleteForOwner 删除任务，结果随外键级联删除
func (r *TaskRepository) DeleteForOwner(ctx context.Context, id, ownerID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.DeleteForOwner")
	defer span.End()

	if !validID(id, ownerID) {
		return false, nil
	}

	db := getDB(ctx, r.client.db)
	result := db.Delete(&entity.Task{}, "id = ? AND owner_id = ?", id, ownerID)
	if result.Error != nil {
		span.RecordError(result.Error)
		return false, fmt.Errorf("failed to delete task: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
