package mq

import (
	"context"
	"time"
)

// 单次拉取上限，与 SQS ReceiveMessage 的约束一致
const (
	MaxBatchSize = 10
	MaxWaitTime  = 20 * time.Second
)

// Message 队列消息
// ReceiptHandle 每次投递都会变化，删除消息必须使用本次投递的 ReceiptHandle
type Message struct {
	ID              string
	ReceiptHandle   string
	Body            string
	GroupID         string
	DeduplicationID string
}

// SendOptions 发送选项，空值表示不设置
type SendOptions struct {
	GroupID         string
	DeduplicationID string
}

// Receiver 消息接收端（长轮询 + 删除确认）
type Receiver interface {
	// Receive 拉取最多 maxMessages 条消息，服务端最多阻塞 wait
	Receive(ctx context.Context, maxMessages int, wait time.Duration) ([]Message, error)

	// Delete 使用 ReceiptHandle 删除（确认）一次投递
	Delete(ctx context.Context, receiptHandle string) error
}

// Sender 消息发送端
type Sender interface {
	// Send 发送消息体，返回 Provider 分配的消息 ID
	Send(ctx context.Context, body string, opts SendOptions) (string, error)
}

// Queue 同时支持收发的队列（sqs、lmstfy、rabbitmq 客户端均实现）
type Queue interface {
	Receiver
	Sender
}

// ClampBatch 将批量参数限制在 Provider 允许的范围内
func ClampBatch(maxMessages int, wait time.Duration) (int, time.Duration) {
	if maxMessages < 1 {
		maxMessages = 1
	}
	if maxMessages > MaxBatchSize {
		maxMessages = MaxBatchSize
	}
	if wait < 0 {
		wait = 0
	}
	if wait > MaxWaitTime {
		wait = MaxWaitTime
	}
	return maxMessages, wait
}
