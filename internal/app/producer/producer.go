package producer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anilpotu/aws-s3-service/internal/app/infra/mq"
)

// Producer 队列消息生产者
// 无状态，每次调用恰好发起一次发送请求，不做重试
type Producer struct {
	sender mq.Sender
}

// NewProducer 创建 Producer
func NewProducer(sender mq.Sender) *Producer {
	return &Producer{sender: sender}
}

// Send 序列化 payload 并发送到队列，返回队列分配的消息 ID
// groupID / dedupID 为空时不传递
func (p *Producer) Send(ctx context.Context, payload map[string]interface{}, groupID, dedupID string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload failed: %w", err)
	}

	messageID, err := p.sender.Send(ctx, string(body), mq.SendOptions{
		GroupID:         groupID,
		DeduplicationID: dedupID,
	})
	if err != nil {
		return "", fmt.Errorf("send message failed: %w", err)
	}
	return messageID, nil
}

// SendRaw 原样发送消息体，不做 JSON 序列化
func (p *Producer) SendRaw(ctx context.Context, body string) (string, error) {
	messageID, err := p.sender.Send(ctx, body, mq.SendOptions{})
	if err != nil {
		return "", fmt.Errorf("send message failed: %w", err)
	}
	return messageID, nil
}
