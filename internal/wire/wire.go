//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"task-prompt-api/internal/application/account"
	"task-prompt-api/internal/application/catalog"
	"task-prompt-api/internal/application/credit"
	"task-prompt-api/internal/application/promptapp"
	"task-prompt-api/internal/config"
	"task-prompt-api/internal/domain/repository"
	"task-prompt-api/internal/infrastructure/llm"
	"task-prompt-api/internal/infrastructure/persistence/postgres"
	"task-prompt-api/internal/infrastructure/persistence/redis"
	"task-prompt-api/internal/interfaces/http/handler"
	"task-prompt-api/internal/interfaces/http/middleware"
	"task-prompt-api/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		MessagingSet,
		ServiceSet,
		RouterSet,
	)
	return nil, nil, nil
}

// InitializeCLI 初始化运维命令依赖
func InitializeCLI(ctx context.Context, cfg *config.Config) (*CLI, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		MessagingSet,
		ServiceSet,
		wire.Struct(new(CLI), "*"),
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewUserRepository,
	postgres.NewTaskRepository,
	postgres.NewAIPromptRepository,
	postgres.NewTaskPromptRepository,
	postgres.NewCreditTransactionRepository,
)

// RepoSet 整合了具体实现与接口绑定的集合
var RepoSet = wire.NewSet(
	PostgresSet,
	// 接口绑定
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.UserRepository), new(*postgres.UserRepository)),
	wire.Bind(new(repository.TaskRepository), new(*postgres.TaskRepository)),
	wire.Bind(new(repository.AIPromptRepository), new(*postgres.AIPromptRepository)),
	wire.Bind(new(repository.TaskPromptRepository), new(*postgres.TaskPromptRepository)),
	wire.Bind(new(repository.CreditTransactionRepository), new(*postgres.CreditTransactionRepository)),
	wire.Bind(new(credit.UserLocker), new(*postgres.UserRepository)),
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewRateLimiter,
	wire.Bind(new(catalog.Cache), new(*redis.Cache)),
	wire.Bind(new(middleware.RateLimiter), new(*redis.RateLimiter)),
)

// MessagingSet 消息队列提供者集合
var MessagingSet = wire.NewSet(
	ProvideMessagingProducer,
	ProvideEventPublisher,
)

// ServiceSet 应用服务提供者集合
var ServiceSet = wire.NewSet(
	ProvideJWTManager,
	account.NewTokenIssuer,
	account.NewService,
	credit.NewLedger,
	ProvideCatalog,
	llm.NewEinoFactory,
	ProvideTextGenerator,
	promptapp.NewService,
	wire.Bind(new(promptapp.PromptCatalog), new(*catalog.Catalog)),
	wire.Bind(new(promptapp.CreditLedger), new(*credit.Ledger)),
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideMiddlewares,
	ProvideAuthHandler,
	ProvideHealthHandler,
	handler.NewUserHandler,
	handler.NewTaskHandler,
	handler.NewPromptHandler,
	handler.NewCreditHandler,
	wire.Bind(new(handler.AccountService), new(*account.Service)),
	wire.Bind(new(handler.CreditGranter), new(*credit.Ledger)),
	wire.Bind(new(handler.CreditReader), new(*credit.Ledger)),
	wire.Bind(new(handler.PromptLister), new(*catalog.Catalog)),
	wire.Bind(new(handler.PromptApplier), new(*promptapp.Service)),
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
