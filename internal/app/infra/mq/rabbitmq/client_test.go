package rabbitmq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anilpotu/aws-s3-service/internal/app/infra/mq"
)

type nack struct {
	tag     uint64
	requeue bool
}

// fakeChannel 内存版 amqp channel
type fakeChannel struct {
	ready     []amqp.Delivery
	nextTag   uint64
	getErr    error
	down      error // 非空时所有操作返回该错误，模拟 channel 已关闭
	acked     []uint64
	nacked    []nack
	published []amqp.Publishing
	closed    bool
}

func (f *fakeChannel) Get(queue string, autoAck bool) (amqp.Delivery, bool, error) {
	if f.down != nil {
		return amqp.Delivery{}, false, f.down
	}
	if f.getErr != nil {
		return amqp.Delivery{}, false, f.getErr
	}
	if len(f.ready) == 0 {
		return amqp.Delivery{}, false, nil
	}
	d := f.ready[0]
	f.ready = f.ready[1:]
	f.nextTag++
	d.DeliveryTag = f.nextTag
	return d, true, nil
}

func (f *fakeChannel) Ack(tag uint64, multiple bool) error {
	if f.down != nil {
		return f.down
	}
	f.acked = append(f.acked, tag)
	return nil
}

func (f *fakeChannel) Nack(tag uint64, multiple bool, requeue bool) error {
	if f.down != nil {
		return f.down
	}
	f.nacked = append(f.nacked, nack{tag, requeue})
	return nil
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.down != nil {
		return f.down
	}
	f.published = append(f.published, msg)
	f.ready = append(f.ready, amqp.Delivery{MessageId: msg.MessageId, Body: msg.Body})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func deliveries(bodies ...string) []amqp.Delivery {
	out := make([]amqp.Delivery, 0, len(bodies))
	for i, b := range bodies {
		out = append(out, amqp.Delivery{MessageId: string(rune('a' + i)), Body: []byte(b)})
	}
	return out
}

func TestClient_ReceiveRespectsMax(t *testing.T) {
	ch := &fakeChannel{ready: deliveries("1", "2", "3")}
	c := NewWithChannel(ch, "jobs")

	msgs, err := c.Receive(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, mq.Message{ID: "a", ReceiptHandle: "1.1", Body: "1"}, msgs[0])
	assert.Equal(t, "1.2", msgs[1].ReceiptHandle)
	assert.Len(t, ch.ready, 1)
}

func TestClient_DeleteAcks(t *testing.T) {
	ch := &fakeChannel{ready: deliveries(`{"id":1}`)}
	c := NewWithChannel(ch, "jobs")

	msgs, err := c.Receive(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	require.NoError(t, c.Delete(context.Background(), msgs[0].ReceiptHandle))
	assert.Equal(t, []uint64{1}, ch.acked)
	assert.Empty(t, c.pending)

	assert.Error(t, c.Delete(context.Background(), "not-a-tag"))
	assert.Error(t, c.Delete(context.Background(), "1.x"))
	assert.Error(t, c.Delete(context.Background(), msgs[0].ReceiptHandle), "already acked")
}

func TestClient_UndeletedMessagesAreRequeued(t *testing.T) {
	ch := &fakeChannel{ready: deliveries("1", "2")}
	c := NewWithChannel(ch, "jobs")

	msgs, err := c.Receive(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.NoError(t, c.Delete(context.Background(), msgs[0].ReceiptHandle))

	_, err = c.Receive(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []nack{{tag: 2, requeue: true}}, ch.nacked)
}

func TestClient_ReceiveWaitsForMessages(t *testing.T) {
	ch := &fakeChannel{}
	c := NewWithChannel(ch, "jobs")
	c.pollInterval = 5 * time.Millisecond

	start := time.Now()
	msgs, err := c.Receive(context.Background(), 10, 30*time.Millisecond)
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestClient_ReceiveInterrupted(t *testing.T) {
	c := NewWithChannel(&fakeChannel{}, "jobs")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Receive(ctx, 10, 20*time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_ReceiveError(t *testing.T) {
	c := NewWithChannel(&fakeChannel{getErr: errors.New("channel/connection is not open")}, "jobs")

	_, err := c.Receive(context.Background(), 10, 0)
	assert.ErrorContains(t, err, "channel/connection is not open")
}

func TestClient_SendRoundTrip(t *testing.T) {
	ch := &fakeChannel{}
	c := NewWithChannel(ch, "jobs")

	id, err := c.Send(context.Background(), `{"id":1}`, mq.SendOptions{GroupID: "ignored"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.Len(t, ch.published, 1)
	assert.Equal(t, uint8(amqp.Persistent), ch.published[0].DeliveryMode)
	assert.Equal(t, "application/json", ch.published[0].ContentType)

	msgs, err := c.Receive(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, id, msgs[0].ID)
	assert.Equal(t, `{"id":1}`, msgs[0].Body)

	require.NoError(t, c.Close())
	assert.True(t, ch.closed)
}

// redialTo 返回依次交出给定 channel 的 Dialer
func redialTo(dials *int, channels ...*fakeChannel) Dialer {
	return func() (Channel, func() error, error) {
		if *dials >= len(channels) {
			return nil, nil, errors.New("dial tcp 127.0.0.1:5672: connect: connection refused")
		}
		ch := channels[*dials]
		*dials++
		return ch, nil, nil
	}
}

func TestClient_ReconnectsAfterGetOnClosedChannel(t *testing.T) {
	old := &fakeChannel{down: amqp.ErrClosed}
	fresh := &fakeChannel{ready: deliveries(`{"id":2}`)}
	c := NewWithChannel(old, "jobs")
	dials := 0
	c.dial = redialTo(&dials, fresh)

	_, err := c.Receive(context.Background(), 10, 0)
	assert.ErrorIs(t, err, amqp.ErrClosed)
	assert.True(t, old.closed)

	msgs, err := c.Receive(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, 1, dials)
	assert.Equal(t, "2.1", msgs[0].ReceiptHandle)

	require.NoError(t, c.Delete(context.Background(), msgs[0].ReceiptHandle))
	assert.Equal(t, []uint64{1}, fresh.acked)
}

func TestClient_StaleHandleAfterReconnect(t *testing.T) {
	old := &fakeChannel{ready: deliveries("1")}
	fresh := &fakeChannel{ready: deliveries("2")}
	c := NewWithChannel(old, "jobs")
	dials := 0
	c.dial = redialTo(&dials, fresh)

	stale, err := c.Receive(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, stale, 1)

	// broker 重启：旧 channel 上的投递已无法确认
	old.down = amqp.ErrClosed
	msgs, err := c.Receive(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "2", msgs[0].Body)
	assert.Len(t, c.pending, 1)

	// 旧 handle 与新 channel 的 delivery tag 相同，但不能被确认
	assert.Error(t, c.Delete(context.Background(), stale[0].ReceiptHandle))
	assert.Empty(t, fresh.acked)
	require.NoError(t, c.Delete(context.Background(), msgs[0].ReceiptHandle))
	assert.Equal(t, []uint64{1}, fresh.acked)
}

func TestClient_SendRetriesOnReconnectedChannel(t *testing.T) {
	old := &fakeChannel{down: amqp.ErrClosed}
	fresh := &fakeChannel{}
	c := NewWithChannel(old, "jobs")
	dials := 0
	c.dial = redialTo(&dials, fresh)

	id, err := c.Send(context.Background(), `{"id":1}`, mq.SendOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Empty(t, old.published)
	require.Len(t, fresh.published, 1)
	assert.Equal(t, id, fresh.published[0].MessageId)
}

func TestClient_RedialFailureIsRetriedLater(t *testing.T) {
	old := &fakeChannel{down: amqp.ErrClosed}
	fresh := &fakeChannel{ready: deliveries("ok")}
	c := NewWithChannel(old, "jobs")
	failFirst := true
	c.dial = func() (Channel, func() error, error) {
		if failFirst {
			failFirst = false
			return nil, nil, errors.New("connection refused")
		}
		return fresh, nil, nil
	}

	_, err := c.Receive(context.Background(), 10, 0)
	assert.ErrorIs(t, err, amqp.ErrClosed)

	_, err = c.Receive(context.Background(), 10, 0)
	assert.ErrorContains(t, err, "redial")

	msgs, err := c.Receive(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "ok", msgs[0].Body)
}

func TestClient_WithoutDialerStaysClosed(t *testing.T) {
	c := NewWithChannel(&fakeChannel{down: amqp.ErrClosed}, "jobs")

	_, err := c.Receive(context.Background(), 10, 0)
	assert.ErrorIs(t, err, amqp.ErrClosed)
	_, err = c.Send(context.Background(), "x", mq.SendOptions{})
	assert.ErrorIs(t, err, amqp.ErrClosed)
}
