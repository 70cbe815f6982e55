// Package handler 提供 HTTP 请求处理器
package handler

import (
	"time"

	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/domain/repository"
	"task-prompt-api/internal/interfaces/http/dto"
	"task-prompt-api/internal/interfaces/http/middleware"
	"task-prompt-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

// TaskHandler 任务处理器
type TaskHandler struct {
	taskRepo       repository.TaskRepository
	taskPromptRepo repository.TaskPromptRepository
	now            func() time.Time
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(taskRepo repository.TaskRepository, taskPromptRepo repository.TaskPromptRepository) *TaskHandler {
	return &TaskHandler{
		taskRepo:       taskRepo,
		taskPromptRepo: taskPromptRepo,
		now:            time.Now,
	}
}

// ListTasks 获取任务列表
// @Summary 获取任务列表
// @Description 除 completed 过滤外均不返回已完成任务
// @Tags Tasks
// @Produce json
// @Param sort query string false "date_added|date_due|priority|description|status" default(date_added)
// @Param filter_name query string false "today|week|high_priority|completed|category:<x>|location:<x>"
// @Param skip query int false "跳过条数" default(0)
// @Param limit query int false "返回条数" default(100)
// @Success 200 {object} dto.Response[[]dto.TaskResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	ctx := c.Request.Context()

	sort, ok := repository.ParseTaskSort(c.Query("sort"))
	if !ok {
		dto.AppError(c, errors.ErrInvalidParam.WithDetail("unsupported sort: "+c.Query("sort")))
		return
	}
	page, err := dto.BindPagination(c)
	if err != nil {
		bindError(c, err)
		return
	}

	tasks, err := h.taskRepo.ListByOwner(ctx, middleware.GetUserIDFromGin(c), repository.TaskQuery{
		Filter:     repository.ParseTaskFilter(c.Query("filter_name")),
		Sort:       sort,
		Pagination: page,
		Now:        h.now(),
	})
	if err != nil {
		handleError(c, errors.Wrap(err, errors.CodeDatabaseError, "failed to list tasks"), "failed to list tasks")
		return
	}
	dto.Success(c, dto.ToTaskListResponse(tasks))
}

// CreateTask 创建任务
// @Summary 创建任务
// @Tags Tasks
// @Accept json
// @Produce json
// @Param body body dto.TaskRequest true "任务信息"
// @Success 201 {object} dto.Response[dto.TaskResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	task := req.ToTaskEntity(middleware.GetUserIDFromGin(c))
	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		handleError(c, errors.Wrap(err, errors.CodeDatabaseError, "failed to create task"), "failed to create task")
		return
	}
	dto.Created(c, dto.ToTaskResponse(task))
}

// GetTask 获取任务详情，不属于当前用户的任务视为不存在
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := h.loadTask(c)
	if !ok {
		return
	}
	dto.Success(c, dto.ToTaskResponse(task))
}

// UpdateTask 整体更新任务
// @Summary 更新任务
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "任务 ID"
// @Param body body dto.TaskRequest true "任务信息"
// @Success 200 {object} dto.Response[dto.TaskResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	req.ApplyTo(task)
	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		handleError(c, errors.Wrap(err, errors.CodeDatabaseError, "failed to update task"), "failed to update task")
		return
	}
	dto.Success(c, dto.ToTaskResponse(task))
}

// DeleteTask 删除任务
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	deleted, err := h.taskRepo.DeleteForOwner(c.Request.Context(), dto.BindTaskID(c), middleware.GetUserIDFromGin(c))
	if err != nil {
		handleError(c, errors.Wrap(err, errors.CodeDatabaseError, "failed to delete task"), "failed to delete task")
		return
	}
	if !deleted {
		dto.AppError(c, errors.ErrTaskNotFound)
		return
	}
	dto.NoContent(c)
}

// ListTaskPrompts 列出任务的提示词应用结果
func (h *TaskHandler) ListTaskPrompts(c *gin.Context) {
	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	items, err := h.taskPromptRepo.ListByTask(c.Request.Context(), task.ID)
	if err != nil {
		handleError(c, errors.Wrap(err, errors.CodeDatabaseError, "failed to list task prompts"), "failed to list task prompts")
		return
	}
	dto.Success(c, dto.ToTaskPromptListResponse(items))
}

// loadTask 按路径 ID 与当前用户加载任务，失败时已写入响应
func (h *TaskHandler) loadTask(c *gin.Context) (*entity.Task, bool) {
	task, err := h.taskRepo.GetByIDForOwner(c.Request.Context(), dto.BindTaskID(c), middleware.GetUserIDFromGin(c))
	if err != nil {
		handleError(c, errors.Wrap(err, errors.CodeDatabaseError, "failed to get task"), "failed to get task")
		return nil, false
	}
	if task == nil {
		dto.AppError(c, errors.ErrTaskNotFound)
		return nil, false
	}
	return task, true
}
