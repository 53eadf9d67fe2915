package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/anilpotu/aws-s3-service/internal/app/config"
)

// PubSubClient Redis Pub/Sub 客户端封装
// 消费者的 redis 处理器通过它转发队列消息
type PubSubClient struct {
	rdb *redis.Client
}

// NewPubSubClient 创建 Pub/Sub 客户端并检查连通性
func NewPubSubClient(ctx context.Context, cfg config.RedisConfig) (*PubSubClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s failed: %w", cfg.Addr, err)
	}

	return &PubSubClient{rdb: rdb}, nil
}

// Publish 向指定 channel 发布消息
func (c *PubSubClient) Publish(ctx context.Context, channel string, message string) error {
	return c.rdb.Publish(ctx, channel, message).Err()
}

// Stream 持续订阅 channel，ctx 取消后停止并关闭返回的通道
func (c *PubSubClient) Stream(ctx context.Context, channel string) (<-chan string, error) {
	sub := c.rdb.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s failed: %w", channel, err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close 关闭连接
func (c *PubSubClient) Close() error {
	return c.rdb.Close()
}
