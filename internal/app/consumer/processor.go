package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
)

// Processor 单条消息处理器
// body 为 JSON 解析结果，消息体不是合法 JSON 时为原始字符串
// 返回 error 表示处理失败，消息不会被删除
type Processor interface {
	Process(ctx context.Context, body interface{}) error
}

// ProcessorFunc 函数适配器
type ProcessorFunc func(ctx context.Context, body interface{}) error

// Process 实现 Processor 接口
func (f ProcessorFunc) Process(ctx context.Context, body interface{}) error {
	return f(ctx, body)
}

// LogProcessor 默认处理器：只记录日志，始终成功
type LogProcessor struct {
	logger logger.Logger
}

// NewLogProcessor 创建日志处理器
func NewLogProcessor(logger logger.Logger) *LogProcessor {
	return &LogProcessor{logger: logger}
}

func (p *LogProcessor) Process(ctx context.Context, body interface{}) error {
	if raw, ok := body.(string); ok {
		p.logger.InfoContext(ctx, "Processed queue message (raw)", "body", raw)
		return nil
	}
	p.logger.InfoContext(ctx, "Processed queue message", "body", body)
	return nil
}

// Publisher 消息发布接口（redis.PubSubClient 实现）
type Publisher interface {
	Publish(ctx context.Context, channel string, message string) error
}

// RelayProcessor 将消息转发到 Redis 频道
// 发布失败视为处理失败，消息保留在队列中等待重新投递
type RelayProcessor struct {
	publisher Publisher
	channel   string
	logger    logger.Logger
}

// NewRelayProcessor 创建转发处理器
func NewRelayProcessor(publisher Publisher, channel string, logger logger.Logger) *RelayProcessor {
	return &RelayProcessor{
		publisher: publisher,
		channel:   channel,
		logger:    logger,
	}
}

func (p *RelayProcessor) Process(ctx context.Context, body interface{}) error {
	var payload string
	if raw, ok := body.(string); ok {
		payload = raw
	} else {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal message body failed: %w", err)
		}
		payload = string(data)
	}

	if err := p.publisher.Publish(ctx, p.channel, payload); err != nil {
		return fmt.Errorf("relay to channel %s failed: %w", p.channel, err)
	}

	p.logger.DebugContext(ctx, "Relayed queue message", "channel", p.channel)
	return nil
}
