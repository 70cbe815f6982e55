// Package promptapp 实现按积分扣费的提示词应用流程
package promptapp

import (
	"context"
	"errors"
	"time"

	"task-prompt-api/internal/application/catalog"
	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/domain/repository"
	"task-prompt-api/internal/domain/service"
	apperrors "task-prompt-api/pkg/errors"
	"task-prompt-api/pkg/logger"
	"task-prompt-api/pkg/metrics"
	"task-prompt-api/pkg/tracer"
)

// MessageInsufficientCredits 余额不足时的拒绝原因
const MessageInsufficientCredits = "Insufficient credits"

// 应用结果，用于指标标签
const (
	outcomeApplied  = "applied"
	outcomeDeclined = "declined"
	outcomeFailed   = "failed"
)

// errDeclined 事务内复核余额不足，用于触发回滚
var errDeclined = errors.New("declined after re-check")

// PromptCatalog 提示词目录
type PromptCatalog interface {
	Get(ctx context.Context, id int64) (*entity.AIPrompt, error)
}

// CreditLedger 积分账本
type CreditLedger interface {
	Balance(ctx context.Context, userID string) (int64, error)
	Record(ctx context.Context, userID string, amount int64, paymentRef, taskPromptID *string) (*entity.CreditTransaction, error)
	WithLockedBalance(ctx context.Context, userID string, fn func(ctx context.Context, balance int64) error) error
}

// ApplyResult 提示词应用结果
// Success 为 false 表示被拒绝，此时 Message 为原因，CreditBalance 为当前余额
type ApplyResult struct {
	Success       bool               `json:"success"`
	Message       string             `json:"message,omitempty"`
	TaskPrompt    *entity.TaskPrompt `json:"task_prompt,omitempty"`
	CreditBalance int64              `json:"credit_balance"`
}

// Service 提示词应用服务
type Service struct {
	catalog     PromptCatalog
	tasks       repository.TaskRepository
	taskPrompts repository.TaskPromptRepository
	ledger      CreditLedger
	generator   service.TextGenerator
	events      service.EventPublisher
}

// NewService 创建提示词应用服务
func NewService(
	catalog PromptCatalog,
	tasks repository.TaskRepository,
	taskPrompts repository.TaskPromptRepository,
	ledger CreditLedger,
	generator service.TextGenerator,
	events service.EventPublisher,
) *Service {
	if events == nil {
		events = service.NoopPublisher{}
	}
	return &Service{
		catalog:     catalog,
		tasks:       tasks,
		taskPrompts: taskPrompts,
		ledger:      ledger,
		generator:   generator,
		events:      events,
	}
}

// Apply 将提示词应用到用户的任务上
//
// 余额不足返回 Success=false 的结果而不是错误。生成失败时不写入任何数据。
// 结果保存与扣费在同一事务内完成，事务先锁定用户行再复核余额，
// 因此并发请求不会把余额扣成负数。
func (s *Service) Apply(ctx context.Context, userID, taskID string, promptID int64) (*ApplyResult, error) {
	ctx, span := tracer.Start(ctx, "promptapp.Service.Apply")
	defer span.End()

	ctx = logger.WithContext(ctx, logger.TaskIDKey, taskID)
	start := time.Now()

	prompt, err := s.catalog.Get(ctx, promptID)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}
	ctx = service.WithPromptName(ctx, prompt.Name)

	task, err := s.tasks.GetByIDForOwner(ctx, taskID, userID)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get task")
	}
	if task == nil {
		return nil, apperrors.ErrTaskNotFound
	}

	balance, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}
	if balance < prompt.Cost {
		s.observe(prompt, outcomeDeclined, start)
		logger.Info(ctx, "prompt application declined", "prompt", prompt.Name, "balance", balance, "cost", prompt.Cost)
		return declined(balance), nil
	}

	result, err := s.generator.Generate(ctx, catalog.Fill(prompt, task.Description))
	if err != nil {
		s.observe(prompt, outcomeFailed, start)
		tracer.RecordError(span, err)
		logger.Error(ctx, "text generation failed", err, "prompt", prompt.Name)
		return nil, err
	}

	var (
		taskPrompt *entity.TaskPrompt
		remaining  int64
	)
	err = s.ledger.WithLockedBalance(ctx, userID, func(ctx context.Context, locked int64) error {
		if locked < prompt.Cost {
			remaining = locked
			return errDeclined
		}

		tp := entity.NewTaskPrompt(task.ID, prompt.ID, result)
		if err := s.taskPrompts.Create(ctx, tp); err != nil {
			return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to save prompt result")
		}
		if _, err := s.ledger.Record(ctx, userID, -prompt.Cost, nil, &tp.ID); err != nil {
			return err
		}

		taskPrompt = tp
		remaining = locked - prompt.Cost
		return nil
	})
	if errors.Is(err, errDeclined) {
		s.observe(prompt, outcomeDeclined, start)
		logger.Info(ctx, "prompt application declined after re-check", "prompt", prompt.Name, "balance", remaining)
		return declined(remaining), nil
	}
	if err != nil {
		s.observe(prompt, outcomeFailed, start)
		tracer.RecordError(span, err)
		logger.Error(ctx, "failed to persist prompt application", err, "prompt", prompt.Name)
		return nil, err
	}

	s.observe(prompt, outcomeApplied, start)
	metrics.CreditsDebitedTotal.Add(float64(prompt.Cost))
	ctx = logger.WithContext(ctx, logger.PromptIDKey, taskPrompt.ID)
	logger.Info(ctx, "prompt applied", "prompt", prompt.Name, "cost", prompt.Cost, "balance", remaining)

	s.publishApplied(ctx, userID, prompt, taskPrompt, remaining)

	return &ApplyResult{
		Success:       true,
		TaskPrompt:    taskPrompt,
		CreditBalance: remaining,
	}, nil
}

func (s *Service) publishApplied(ctx context.Context, userID string, prompt *entity.AIPrompt, tp *entity.TaskPrompt, balance int64) {
	event := &service.DomainEvent{
		Type:       service.EventTaskPromptApplied,
		UserID:     userID,
		OccurredAt: time.Now(),
		Payload: map[string]any{
			"task_prompt_id": tp.ID,
			"task_id":        tp.TaskID,
			"ai_prompt_id":   prompt.ID,
			"prompt":         prompt.Name,
			"cost":           prompt.Cost,
			"balance":        balance,
		},
	}
	if err := s.events.Publish(ctx, event); err != nil {
		logger.Warn(ctx, "failed to publish event", "type", event.Type, "error", err.Error())
	}
}

func (s *Service) observe(prompt *entity.AIPrompt, outcome string, start time.Time) {
	metrics.PromptApplyTotal.WithLabelValues(prompt.Name, outcome).Inc()
	metrics.PromptApplyDuration.WithLabelValues(prompt.Name).Observe(time.Since(start).Seconds())
}

func declined(balance int64) *ApplyResult {
	return &ApplyResult{
		Success:       false,
		Message:       MessageInsufficientCredits,
		CreditBalance: balance,
	}
}
