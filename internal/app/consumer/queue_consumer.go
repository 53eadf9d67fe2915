package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anilpotu/aws-s3-service/internal/app/infra/mq"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
)

// 默认消费参数
const (
	DefaultMaxMessages  = mq.MaxBatchSize
	DefaultWaitTime     = mq.MaxWaitTime
	DefaultErrorBackoff = 5 * time.Second
)

// QueueConsumer 队列消费者
// 职责：
// 1. 长轮询拉取一批消息
// 2. 逐条解析并调用 Processor 处理
// 3. 处理成功后使用本次投递的 ReceiptHandle 删除消息
//
// 处理失败的消息不删除，等待可见性超时后由队列重新投递（至少一次语义）
type QueueConsumer struct {
	receiver  mq.Receiver
	processor Processor
	logger    logger.Logger

	maxMessages  int
	waitTime     time.Duration
	errorBackoff time.Duration

	// pause 出错后的冷却等待，返回 false 表示等待期间收到停止信号
	pause func(ctx context.Context, d time.Duration) bool
}

// Config 消费者配置
type Config struct {
	MaxMessages  int           // 单次拉取上限（1-10）
	WaitTime     time.Duration // 长轮询等待时间（0-20s）
	ErrorBackoff time.Duration // 拉取/删除失败后的冷却时间
}

// NewQueueConsumer 创建队列消费者实例
func NewQueueConsumer(receiver mq.Receiver, processor Processor, config *Config, logger logger.Logger) *QueueConsumer {
	if config == nil {
		config = &Config{}
	}
	maxMessages := config.MaxMessages
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	waitTime := config.WaitTime
	if waitTime <= 0 {
		waitTime = DefaultWaitTime
	}
	maxMessages, waitTime = mq.ClampBatch(maxMessages, waitTime)

	errorBackoff := config.ErrorBackoff
	if errorBackoff <= 0 {
		errorBackoff = DefaultErrorBackoff
	}

	return &QueueConsumer{
		receiver:     receiver,
		processor:    processor,
		logger:       logger,
		maxMessages:  maxMessages,
		waitTime:     waitTime,
		errorBackoff: errorBackoff,
		pause:        sleepContext,
	}
}

// Name 实现 worker.Runner 接口
func (c *QueueConsumer) Name() string {
	return "queue-consumer"
}

// Start 启动消费循环，直到 ctx 被取消
// 停止时返回 nil；拉取被取消打断属于正常退出
func (c *QueueConsumer) Start(ctx context.Context) error {
	c.logger.Info("Queue consumer started",
		"max_messages", c.maxMessages,
		"wait_time", c.waitTime.String(),
		"error_backoff", c.errorBackoff.String(),
	)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Queue consumer stopped")
			return nil
		default:
		}

		if err := c.pollOnce(ctx); err != nil {
			if ctx.Err() != nil {
				c.logger.Warn("Queue poll failed while stopping", "error", err)
				c.logger.Info("Queue consumer stopped")
				return nil
			}
			c.logger.Error("Queue poll failed, backing off",
				"error", err,
				"backoff", c.errorBackoff.String(),
			)
			if !c.pause(ctx, c.errorBackoff) {
				c.logger.Info("Queue consumer stopped")
				return nil
			}
		}
	}
}

// pollOnce 拉取并处理一批消息
// 已拉取的消息使用脱离取消信号的 Context 处理，停止信号不会打断批次中途的处理和删除
func (c *QueueConsumer) pollOnce(ctx context.Context) error {
	msgs, err := c.receiver.Receive(ctx, c.maxMessages, c.waitTime)
	if err != nil {
		return fmt.Errorf("receive messages failed: %w", err)
	}
	if len(msgs) == 0 {
		return nil
	}

	c.logger.Debug("Received messages", "count", len(msgs))

	batchCtx := context.WithoutCancel(ctx)
	for i := range msgs {
		if err := c.handle(batchCtx, &msgs[i]); err != nil {
			return err
		}
	}
	return nil
}

// handle 处理单条消息；只有删除失败才返回 error
func (c *QueueConsumer) handle(ctx context.Context, msg *mq.Message) error {
	body := DecodeBody(msg.Body)

	if err := c.processor.Process(ctx, body); err != nil {
		// 处理失败，不删除（等待可见性超时后重新投递）
		c.logger.Warn("Failed to process message, leaving it for redelivery",
			"message_id", msg.ID,
			"error", err,
		)
		return nil
	}

	if err := c.receiver.Delete(ctx, msg.ReceiptHandle); err != nil {
		return fmt.Errorf("delete message %s failed: %w", msg.ID, err)
	}

	c.logger.Debug("Message processed and deleted", "message_id", msg.ID)
	return nil
}

// DecodeBody 按 JSON 解析消息体，失败时返回原始字符串
func DecodeBody(raw string) interface{} {
	var decoded interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return raw
	}
	return decoded
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
