package sqs

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/anilpotu/aws-s3-service/internal/app/infra/mq"
)

// API SQS SDK 中用到的方法子集，便于测试替换
type API interface {
	ReceiveMessage(ctx context.Context, params *awssqs.ReceiveMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *awssqs.DeleteMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.DeleteMessageOutput, error)
	SendMessage(ctx context.Context, params *awssqs.SendMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.SendMessageOutput, error)
}

// Client SQS 客户端封装，实现 mq.Receiver 和 mq.Sender
type Client struct {
	api      API
	queueURL string
	fifo     bool
}

// NewClient 创建 SQS 客户端
// fifo 为 false 时，发送时忽略 MessageGroupId / MessageDeduplicationId
func NewClient(api API, queueURL string, fifo bool) *Client {
	return &Client{
		api:      api,
		queueURL: queueURL,
		fifo:     fifo,
	}
}

// NewFromConfig 根据 aws.Config 创建 SQS 客户端
func NewFromConfig(cfg aws.Config, queueURL string, fifo bool) *Client {
	return NewClient(awssqs.NewFromConfig(cfg), queueURL, fifo)
}

// Receive 长轮询拉取消息（实现 mq.Receiver 接口）
func (c *Client) Receive(ctx context.Context, maxMessages int, wait time.Duration) ([]mq.Message, error) {
	maxMessages, wait = mq.ClampBatch(maxMessages, wait)

	out, err := c.api.ReceiveMessage(ctx, &awssqs.ReceiveMessageInput{
		QueueUrl:            aws.String(c.queueURL),
		MaxNumberOfMessages: int32(maxMessages),
		WaitTimeSeconds:     int32(wait / time.Second),
		MessageSystemAttributeNames: []types.MessageSystemAttributeName{
			types.MessageSystemAttributeNameMessageGroupId,
			types.MessageSystemAttributeNameMessageDeduplicationId,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sqs receive failed: %w", err)
	}

	msgs := make([]mq.Message, 0, len(out.Messages))
	for _, m := range out.Messages {
		msgs = append(msgs, mq.Message{
			ID:              aws.ToString(m.MessageId),
			ReceiptHandle:   aws.ToString(m.ReceiptHandle),
			Body:            aws.ToString(m.Body),
			GroupID:         m.Attributes[string(types.MessageSystemAttributeNameMessageGroupId)],
			DeduplicationID: m.Attributes[string(types.MessageSystemAttributeNameMessageDeduplicationId)],
		})
	}
	return msgs, nil
}

// Delete 删除消息（实现 mq.Receiver 接口）
func (c *Client) Delete(ctx context.Context, receiptHandle string) error {
	_, err := c.api.DeleteMessage(ctx, &awssqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		return fmt.Errorf("sqs delete failed: %w", err)
	}
	return nil
}

// Send 发送消息（实现 mq.Sender 接口）
func (c *Client) Send(ctx context.Context, body string, opts mq.SendOptions) (string, error) {
	input := &awssqs.SendMessageInput{
		QueueUrl:    aws.String(c.queueURL),
		MessageBody: aws.String(body),
	}
	if c.fifo {
		if opts.GroupID != "" {
			input.MessageGroupId = aws.String(opts.GroupID)
		}
		if opts.DeduplicationID != "" {
			input.MessageDeduplicationId = aws.String(opts.DeduplicationID)
		}
	}

	out, err := c.api.SendMessage(ctx, input)
	if err != nil {
		return "", fmt.Errorf("sqs send failed: %w", err)
	}
	return aws.ToString(out.MessageId), nil
}
