package wire

import (
	"context"

	"task-prompt-api/internal/application/account"
	"task-prompt-api/internal/application/catalog"
	"task-prompt-api/internal/application/credit"
	"task-prompt-api/internal/config"
	"task-prompt-api/internal/domain/repository"
	"task-prompt-api/internal/domain/service"
	"task-prompt-api/internal/infrastructure/llm"
	"task-prompt-api/internal/infrastructure/messaging"
	"task-prompt-api/internal/infrastructure/persistence/postgres"
	"task-prompt-api/internal/infrastructure/persistence/redis"
	"task-prompt-api/internal/interfaces/http/handler"
	"task-prompt-api/internal/interfaces/http/middleware"
	"task-prompt-api/internal/interfaces/http/router"
	"task-prompt-api/pkg/logger"
	"task-prompt-api/pkg/utils"
)

// CLI 运维命令依赖容器
type CLI struct {
	Config   *config.Config
	PgClient *postgres.Client
	Accounts *account.Service
	Ledger   *credit.Ledger
	Catalog  *catalog.Catalog
	Producer *messaging.Producer
}

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideMessagingProducer 提供消息生产者
func ProvideMessagingProducer(redisClient *redis.Client, cfg *config.Config) *messaging.Producer {
	stream := cfg.Messaging.RedisStream
	return messaging.NewProducer(redisClient.Redis(), messaging.Stream(stream.Stream), stream.MaxLen)
}

// ProvideEventPublisher 未启用事件流时返回空实现
func ProvideEventPublisher(ctx context.Context, cfg *config.Config, producer *messaging.Producer) service.EventPublisher {
	if !cfg.Messaging.RedisStream.Enabled {
		logger.Info(ctx, "redis stream disabled, domain events are dropped")
		return service.NoopPublisher{}
	}
	return producer
}

// ProvideJWTManager 提供 JWT 管理器
func ProvideJWTManager(cfg *config.Config) *utils.JWTManager {
	jwtCfg := cfg.Security.JWT
	return utils.NewJWTManager(jwtCfg.Secret, jwtCfg.Issuer, jwtCfg.Expiration)
}

// ProvideCatalog 提供带缓存的提示词目录
func ProvideCatalog(cfg *config.Config, repo repository.AIPromptRepository, cache catalog.Cache) *catalog.Catalog {
	return catalog.NewCatalog(repo, cache, cfg.Cache.CatalogTTL)
}

// ProvideTextGenerator 提供基于 Eino 的文本生成器
func ProvideTextGenerator(factory *llm.EinoFactory) service.TextGenerator {
	return llm.NewClient(factory)
}

// ProvideAuthHandler 提供认证处理器
func ProvideAuthHandler(accounts *account.Service, jwtManager *utils.JWTManager) *handler.AuthHandler {
	return handler.NewAuthHandler(accounts, jwtManager.TTL())
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(cfg *config.Config, pg *postgres.Client, redisClient *redis.Client) *handler.HealthHandler {
	return handler.NewHealthHandler(cfg, pg, redisClient)
}

// ProvideMiddlewares 提供依赖外部组件的中间件
func ProvideMiddlewares(cfg *config.Config, jwtManager *utils.JWTManager, users repository.UserRepository, limiter middleware.RateLimiter) router.Middlewares {
	rl := cfg.Security.RateLimit
	return router.Middlewares{
		Auth: middleware.Auth(jwtManager, users),
		RateLimit: middleware.RateLimit(middleware.RateLimitConfig{
			Enabled:  rl.Enabled,
			Requests: rl.Requests,
			Window:   rl.Window,
			Scope:    "api",
		}, limiter),
	}
}
