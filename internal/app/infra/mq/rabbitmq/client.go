package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/anilpotu/aws-s3-service/internal/app/infra/mq"
)

// defaultPollInterval 队列为空时两次 basic.get 之间的间隔
const defaultPollInterval = 500 * time.Millisecond

// Channel amqp.Channel 中用到的方法
type Channel interface {
	Get(queue string, autoAck bool) (amqp.Delivery, bool, error)
	Ack(tag uint64, multiple bool) error
	Nack(tag uint64, multiple bool, requeue bool) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Dialer 建立新的 channel，closeConn 负责释放其所属连接（可为 nil）
type Dialer func() (ch Channel, closeConn func() error, err error)

// Client RabbitMQ 客户端封装，实现 mq.Receiver 和 mq.Sender
// 使用 basic.get 拉取，ReceiptHandle 为 "<epoch>.<delivery tag>"
// 上一批中未删除的消息会在下一次 Receive 前 requeue，相当于可见性超时为一个轮询周期
// channel 或连接关闭后，下一次操作会重新建立连接，epoch 递增使旧的 ReceiptHandle 失效
type Client struct {
	mu        sync.Mutex
	ch        Channel
	closeConn func() error
	dial      Dialer
	epoch     uint64
	queue     string
	pending   map[uint64]struct{}

	pollInterval time.Duration
}

// Dial 连接 RabbitMQ 并声明持久化队列
func Dial(url, queue string) (*Client, error) {
	dial := func() (Channel, func() error, error) {
		return openChannel(url, queue)
	}
	ch, closeConn, err := dial()
	if err != nil {
		return nil, err
	}

	c := NewWithChannel(ch, queue)
	c.closeConn = closeConn
	c.dial = dial
	return c, nil
}

func openChannel(url, queue string) (Channel, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	return ch, conn.Close, nil
}

// NewWithChannel 使用已有 Channel 创建客户端（测试用）
// 未设置 Dialer 时 channel 关闭后无法恢复
func NewWithChannel(ch Channel, queue string) *Client {
	return &Client{
		ch:           ch,
		epoch:        1,
		queue:        queue,
		pending:      map[uint64]struct{}{},
		pollInterval: defaultPollInterval,
	}
}

// channel 返回当前可用的 channel，必要时重新建立连接，调用方需持有 mu
func (c *Client) channel() (Channel, error) {
	if c.ch != nil {
		return c.ch, nil
	}
	if c.dial == nil {
		return nil, amqp.ErrClosed
	}
	ch, closeConn, err := c.dial()
	if err != nil {
		return nil, fmt.Errorf("amqp redial failed: %w", err)
	}
	c.ch = ch
	c.closeConn = closeConn
	c.epoch++
	return ch, nil
}

// resetOnClosed channel 已关闭时丢弃它，未确认的投递由 broker 重新入队
// 调用方需持有 mu
func (c *Client) resetOnClosed(err error) {
	if !isClosed(err) || c.ch == nil {
		return
	}
	_ = c.ch.Close()
	if c.closeConn != nil {
		_ = c.closeConn()
	}
	c.ch = nil
	c.closeConn = nil
	c.pending = map[uint64]struct{}{}
}

// isClosed 判断是否为不可恢复的 channel/连接错误
func isClosed(err error) bool {
	var amqpErr *amqp.Error
	return errors.As(err, &amqpErr) && !amqpErr.Recover
}

// Receive 拉取消息（实现 mq.Receiver 接口）
// 队列为空时按 pollInterval 重试，直到拿到消息或等待 wait
func (c *Client) Receive(ctx context.Context, maxMessages int, wait time.Duration) ([]mq.Message, error) {
	maxMessages, wait = mq.ClampBatch(maxMessages, wait)

	if err := c.requeuePending(); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(wait)
	for {
		msgs, err := c.drain(maxMessages)
		if err != nil || len(msgs) > 0 {
			return msgs, err
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, nil
		}
		timer := time.NewTimer(min(c.pollInterval, remaining))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *Client) drain(maxMessages int) ([]mq.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch, err := c.channel()
	if err != nil {
		return nil, err
	}

	var msgs []mq.Message
	for len(msgs) < maxMessages {
		d, ok, err := ch.Get(c.queue, false)
		if err != nil {
			// channel 已关闭时本批投递都无法再确认，整体丢弃
			if isClosed(err) {
				c.resetOnClosed(err)
				return nil, fmt.Errorf("amqp get from %s failed: %w", c.queue, err)
			}
			if len(msgs) > 0 {
				return msgs, nil
			}
			return nil, fmt.Errorf("amqp get from %s failed: %w", c.queue, err)
		}
		if !ok {
			break
		}
		c.pending[d.DeliveryTag] = struct{}{}
		msgs = append(msgs, mq.Message{
			ID:            d.MessageId,
			ReceiptHandle: formatHandle(c.epoch, d.DeliveryTag),
			Body:          string(d.Body),
		})
	}
	return msgs, nil
}

// requeuePending 将上一批未确认的消息放回队列
func (c *Client) requeuePending() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ch == nil {
		return nil
	}
	for tag := range c.pending {
		if err := c.ch.Nack(tag, false, true); err != nil {
			if isClosed(err) {
				c.resetOnClosed(err)
				return nil
			}
			return fmt.Errorf("amqp requeue delivery %d failed: %w", tag, err)
		}
		delete(c.pending, tag)
	}
	return nil
}

// Delete 确认消息（实现 mq.Receiver 接口）
// 重连前拿到的 ReceiptHandle 已失效，返回错误而不会确认新 channel 上的投递
func (c *Client) Delete(ctx context.Context, receiptHandle string) error {
	epoch, tag, err := parseHandle(receiptHandle)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.pending[tag]; !ok || epoch != c.epoch || c.ch == nil {
		return fmt.Errorf("delivery %s is no longer pending", receiptHandle)
	}
	if err := c.ch.Ack(tag, false); err != nil {
		c.resetOnClosed(err)
		return fmt.Errorf("amqp ack delivery %d failed: %w", tag, err)
	}
	delete(c.pending, tag)
	return nil
}

// Send 通过默认 exchange 投递到队列（实现 mq.Sender 接口）
// RabbitMQ 不支持分组和去重，opts 被忽略；channel 已关闭时重连后重试一次
func (c *Client) Send(ctx context.Context, body string, opts mq.SendOptions) (string, error) {
	messageID := uuid.NewString()
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now(),
		Body:         []byte(body),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		var ch Channel
		ch, err = c.channel()
		if err != nil {
			break
		}
		err = ch.Publish(
			"",      // default exchange
			c.queue, // routing key
			false,   // mandatory
			false,   // immediate
			msg,
		)
		if err == nil {
			return messageID, nil
		}
		if !isClosed(err) {
			break
		}
		c.resetOnClosed(err)
	}
	return "", fmt.Errorf("amqp publish to %s failed: %w", c.queue, err)
}

// Close 关闭 channel 和连接，未确认的消息由 broker 重新投递
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.ch != nil {
		err = c.ch.Close()
	}
	if c.closeConn != nil {
		if cerr := c.closeConn(); err == nil {
			err = cerr
		}
	}
	c.ch = nil
	c.closeConn = nil
	c.dial = nil
	return err
}

func formatHandle(epoch, tag uint64) string {
	return strconv.FormatUint(epoch, 10) + "." + strconv.FormatUint(tag, 10)
}

func parseHandle(receiptHandle string) (uint64, uint64, error) {
	epochPart, tagPart, ok := strings.Cut(receiptHandle, ".")
	if !ok {
		return 0, 0, fmt.Errorf("invalid receipt handle %q", receiptHandle)
	}
	epoch, err := strconv.ParseUint(epochPart, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid receipt handle %q: %w", receiptHandle, err)
	}
	tag, err := strconv.ParseUint(tagPart, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid receipt handle %q: %w", receiptHandle, err)
	}
	return epoch, tag, nil
}
