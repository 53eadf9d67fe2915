package sns

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
)

// API SNS SDK 中用到的方法子集
type API interface {
	Publish(ctx context.Context, params *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

// Client SNS 主题发布客户端
type Client struct {
	api      API
	topicARN string
}

// NewClient 创建 SNS 客户端
func NewClient(api API, topicARN string) *Client {
	return &Client{api: api, topicARN: topicARN}
}

// NewFromConfig 根据 aws.Config 创建 SNS 客户端
func NewFromConfig(cfg aws.Config, topicARN string) *Client {
	return NewClient(awssns.NewFromConfig(cfg), topicARN)
}

// Publish 向主题发布消息，subject 为空时不设置
func (c *Client) Publish(ctx context.Context, message, subject string) (string, error) {
	input := &awssns.PublishInput{
		TopicArn: aws.String(c.topicARN),
		Message:  aws.String(message),
	}
	if subject != "" {
		input.Subject = aws.String(subject)
	}

	out, err := c.api.Publish(ctx, input)
	if err != nil {
		return "", fmt.Errorf("sns publish failed: %w", err)
	}
	return aws.ToString(out.MessageId), nil
}
