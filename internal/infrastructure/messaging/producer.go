// Package messaging 提供基于 Redis Stream 的事件发布
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"task-prompt-api/internal/domain/service"
	"task-prompt-api/pkg/metrics"
)

var tracer = otel.Tracer("messaging")

// Producer 消息生产者
type Producer struct {
	client *redis.Client
	stream Stream
	maxLen int64
}

// NewProducer 创建消息生产者
func NewProducer(client *redis.Client, stream Stream, maxLen int64) *Producer {
	if stream == "" {
		stream = DefaultStream
	}
	if maxLen <= 0 {
		maxLen = 100000
	}
	return &Producer{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

// Publish 将领域事件写入事件流，实现 service.EventPublisher
func (p *Producer) Publish(ctx context.Context, event *service.DomainEvent) error {
	msg, err := NewMessage(event.Type, event.UserID, event.Payload)
	if err != nil {
		return err
	}
	msg.CreatedAt = event.OccurredAt
	_, err = p.PublishMessage(ctx, msg)
	return err
}

// PublishMessage 发布消息，返回流内 ID
func (p *Producer) PublishMessage(ctx context.Context, msg *Message) (string, error) {
	ctx, span := tracer.Start(ctx, "producer.Publish",
		trace.WithAttributes(
			attribute.String("stream", string(p.stream)),
			attribute.String("message.id", msg.ID),
			attribute.String("message.type", msg.Type),
		))
	defer span.End()

	data, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	result, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: string(p.stream),
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"type": msg.Type,
			"data": string(data),
		},
	}).Result()
	if err != nil {
		span.RecordError(err)
		metrics.RedisStreamPublished.WithLabelValues(string(p.stream), "error").Inc()
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	metrics.RedisStreamPublished.WithLabelValues(string(p.stream), "success").Inc()
	span.SetAttributes(attribute.String("stream.message_id", result))
	return result, nil
}

// Recent 按时间倒序读取最近 count 条消息
func (p *Producer) Recent(ctx context.Context, count int64) ([]*Message, error) {
	ctx, span := tracer.Start(ctx, "producer.Recent")
	defer span.End()

	entries, err := p.client.XRevRangeN(ctx, string(p.stream), "+", "-", count).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}

	msgs := make([]*Message, 0, len(entries))
	for _, e := range entries {
		raw, ok := e.Values["data"].(string)
		if !ok {
			continue
		}
		var msg Message
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			continue
		}
		msgs = append(msgs, &msg)
	}
	return msgs, nil
}
