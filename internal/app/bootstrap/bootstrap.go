package bootstrap

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/anilpotu/aws-s3-service/internal/app/config"
	"github.com/anilpotu/aws-s3-service/internal/app/consumer"
	"github.com/anilpotu/aws-s3-service/internal/app/infra/mq"
	"github.com/anilpotu/aws-s3-service/internal/app/infra/mq/lmstfy"
	"github.com/anilpotu/aws-s3-service/internal/app/infra/mq/rabbitmq"
	"github.com/anilpotu/aws-s3-service/internal/app/infra/mq/sqs"
	"github.com/anilpotu/aws-s3-service/internal/app/infra/persistence/redis"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
)

// NewQueue 根据 queue.provider 创建队列客户端
// 返回的 cleanup 用于关闭长连接（rabbitmq）
func NewQueue(cfg config.QueueConfig, awsCfg aws.Config, log logger.Logger) (mq.Queue, func(), error) {
	switch cfg.Provider {
	case config.ProviderSQS:
		return sqs.NewFromConfig(awsCfg, cfg.URL, cfg.IsFIFOQueue()), func() {}, nil
	case config.ProviderLmstfy:
		l := cfg.Lmstfy
		return lmstfy.NewClient(l.Host, l.Port, l.Namespace, l.Token, lmstfy.Options{
			Queue: l.Queue,
			TTR:   l.TTR,
			TTL:   l.TTL,
			Tries: l.Tries,
		}), func() {}, nil
	case config.ProviderRabbitMQ:
		client, err := rabbitmq.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				log.Warn("Close rabbitmq failed", "error", err)
			}
		}
		return client, cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unsupported queue provider: %q", cfg.Provider)
	}
}

// NewProcessor 根据 consumer.processor 创建消息处理器
// 返回的 cleanup 用于释放处理器持有的连接
func NewProcessor(ctx context.Context, cfg *config.Config, log logger.Logger) (consumer.Processor, func(), error) {
	switch cfg.Consumer.Processor {
	case "", config.ProcessorLog:
		return consumer.NewLogProcessor(log), func() {}, nil
	case config.ProcessorRedis:
		client, err := redis.NewPubSubClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Redis connected", "addr", cfg.Redis.Addr, "channel", cfg.Redis.RelayChannel)
		cleanup := func() {
			if err := client.Close(); err != nil {
				log.Warn("Close redis failed", "error", err)
			}
		}
		return consumer.NewRelayProcessor(client, cfg.Redis.RelayChannel, log), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unsupported consumer processor: %q", cfg.Consumer.Processor)
	}
}

// NewConsumer 组装队列消费者
func NewConsumer(ctx context.Context, cfg *config.Config, receiver mq.Receiver, log logger.Logger) (*consumer.QueueConsumer, func(), error) {
	processor, cleanup, err := NewProcessor(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("init processor failed: %w", err)
	}

	c := consumer.NewQueueConsumer(receiver, processor, &consumer.Config{
		MaxMessages:  cfg.Consumer.MaxMessages,
		WaitTime:     cfg.Consumer.WaitTime,
		ErrorBackoff: cfg.Consumer.ErrorBackoff,
	}, log)
	return c, cleanup, nil
}
