// Package redis 提供 Redis 缓存实现
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"task-prompt-api/pkg/logger"
	"task-prompt-api/pkg/metrics"
)

var cacheTracer = otel.Tracer("redis.cache")

// Cache 缓存服务
type Cache struct {
	client *Client
	prefix string
	group  singleflight.Group
}

// NewCache 创建缓存服务
func NewCache(client *Client) *Cache {
	return &Cache{
		client: client,
		prefix: "cache:",
	}
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

// GetOrLoad Read-Through 缓存模式，使用 singleflight 合并并发加载
// Redis 故障时直接回源，不向调用方返回缓存错误
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	ctx, span := cacheTracer.Start(ctx, "cache.GetOrLoad",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	fullKey := c.key(key)

	val, err := c.client.rdb.Get(ctx, fullKey).Bytes()
	switch {
	case err == nil:
		span.SetAttributes(attribute.Bool("cache.hit", true))
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return val, nil
	case IsNil(err):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		span.RecordError(err)
		metrics.CacheLookups.WithLabelValues("error").Inc()
		logger.Warn(ctx, "cache read failed, falling back to loader", "cache_key", fullKey, "error", err.Error())
	}

	span.SetAttributes(attribute.Bool("cache.hit", false))

	result, err, shared := c.group.Do(fullKey, func() (interface{}, error) {
		data, err := loader()
		if err != nil {
			return nil, err
		}

		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal data: %w", err)
		}

		if err := c.client.rdb.Set(ctx, fullKey, bytes, ttl).Err(); err != nil {
			// 缓存写入失败不影响返回结果
			logger.Warn(ctx, "cache write failed", "cache_key", fullKey, "error", err.Error())
		}

		return bytes, nil
	})

	span.SetAttributes(attribute.Bool("cache.shared", shared))

	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return result.([]byte), nil
}

// Delete 删除缓存
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	ctx, span := cacheTracer.Start(ctx, "cache.Delete",
		trace.WithAttributes(attribute.Int("cache.key_count", len(keys))))
	defer span.End()

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.client.rdb.Del(ctx, full...).Err()
}
