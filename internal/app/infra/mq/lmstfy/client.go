package lmstfy

import (
	"context"
	"fmt"
	"time"

	"github.com/bitleak/lmstfy/client"

	"github.com/anilpotu/aws-s3-service/internal/app/infra/mq"
)

// API lmstfy SDK 方法子集
type API interface {
	Publish(queue string, data []byte, ttlSecond uint32, tries uint16, delaySecond uint32) (string, error)
	Consume(queue string, ttrSecond, timeoutSecond uint32) (*client.Job, error)
	Ack(queue, jobID string) error
}

// sdkAPI 适配官方 LmstfyClient
type sdkAPI struct {
	cli *client.LmstfyClient
}

func (s sdkAPI) Publish(queue string, data []byte, ttlSecond uint32, tries uint16, delaySecond uint32) (string, error) {
	jobID, err := s.cli.Publish(queue, data, ttlSecond, tries, delaySecond)
	if err != nil {
		return "", err
	}
	return jobID, nil
}

func (s sdkAPI) Consume(queue string, ttrSecond, timeoutSecond uint32) (*client.Job, error) {
	job, err := s.cli.Consume(queue, ttrSecond, timeoutSecond)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (s sdkAPI) Ack(queue, jobID string) error {
	if err := s.cli.Ack(queue, jobID); err != nil {
		return err
	}
	return nil
}

// Options lmstfy 队列参数
type Options struct {
	Queue string
	TTR   time.Duration // 消费后不可见时长，相当于 SQS 的 visibility timeout
	TTL   time.Duration // 消息存活时间
	Tries uint16        // 最大投递次数
}

// Client Lmstfy 客户端封装，实现 mq.Receiver 和 mq.Sender
// lmstfy 没有独立的 receipt handle，job ID 即删除凭证；不支持分组和去重
type Client struct {
	api   API
	queue string
	ttr   uint32
	ttl   uint32
	tries uint16
}

// NewClient 创建 Lmstfy 客户端
func NewClient(host string, port int, namespace, token string, opts Options) *Client {
	return NewWithAPI(sdkAPI{cli: client.NewLmstfyClient(host, port, namespace, token)}, opts)
}

// NewWithAPI 使用自定义 API 创建客户端（测试用）
func NewWithAPI(api API, opts Options) *Client {
	if opts.Tries == 0 {
		opts.Tries = 3
	}
	return &Client{
		api:   api,
		queue: opts.Queue,
		ttr:   uint32(opts.TTR.Seconds()),
		ttl:   uint32(opts.TTL.Seconds()),
		tries: opts.Tries,
	}
}

// Receive 拉取消息（实现 mq.Receiver 接口）
// 第一条消息使用长轮询等待，其余消息非阻塞拉取直到凑满一批或队列为空
func (c *Client) Receive(ctx context.Context, maxMessages int, wait time.Duration) ([]mq.Message, error) {
	maxMessages, wait = mq.ClampBatch(maxMessages, wait)

	job, err := c.api.Consume(c.queue, c.ttr, uint32(wait.Seconds()))
	if err != nil {
		return nil, fmt.Errorf("lmstfy consume failed: %w", err)
	}
	if job == nil {
		return nil, nil
	}

	msgs := []mq.Message{toMessage(job)}
	for len(msgs) < maxMessages {
		if ctx.Err() != nil {
			break
		}
		job, err := c.api.Consume(c.queue, c.ttr, 0)
		// 已拉到的消息处于保留状态，出错时先返回已有消息
		if err != nil || job == nil {
			break
		}
		msgs = append(msgs, toMessage(job))
	}
	return msgs, nil
}

// Delete 确认消息（实现 mq.Receiver 接口）
func (c *Client) Delete(ctx context.Context, receiptHandle string) error {
	if err := c.api.Ack(c.queue, receiptHandle); err != nil {
		return fmt.Errorf("lmstfy ack failed: %w", err)
	}
	return nil
}

// Send 发布消息（实现 mq.Sender 接口），opts 中的分组和去重键被忽略
func (c *Client) Send(ctx context.Context, body string, opts mq.SendOptions) (string, error) {
	jobID, err := c.api.Publish(c.queue, []byte(body), c.ttl, c.tries, 0)
	if err != nil {
		return "", fmt.Errorf("lmstfy publish failed: %w", err)
	}
	return jobID, nil
}

func toMessage(job *client.Job) mq.Message {
	return mq.Message{
		ID:            job.ID,
		ReceiptHandle: job.ID,
		Body:          string(job.Data),
	}
}
