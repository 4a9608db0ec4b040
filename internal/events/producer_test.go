package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	msg, err := encode(TopicProducts, "5", ProductEvent{Type: ProductCreated, ProductID: 5, Name: "Lamp", UserID: 2})
	require.NoError(t, err)

	assert.Equal(t, TopicProducts, msg.Topic)
	assert.Equal(t, []byte("5"), msg.Key)
	assert.False(t, msg.Time.IsZero())

	var event map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "product_created", event["type"])
	assert.EqualValues(t, 5, event["productID"])
	assert.Equal(t, "Lamp", event["name"])
	assert.EqualValues(t, 2, event["userID"])
}

func TestEncode_Unmarshalable(t *testing.T) {
	_, err := encode(TopicUsers, "1", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	p := New(nil)
	_, ok := p.(Nop)
	assert.True(t, ok)
	assert.NoError(t, p.PublishEvent(context.Background(), TopicUsers, "1", UserEvent{}))
	assert.NoError(t, p.Close())

	kp := New([]string{"localhost:9092"})
	_, ok = kp.(*Producer)
	assert.True(t, ok)
	assert.NoError(t, kp.Close())
}

func TestNewProducer_WriterConfig(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"})
	t.Cleanup(func() { _ = p.Close() })

	assert.False(t, p.writer.Async)
	assert.Equal(t, 1, p.writer.BatchSize)
	assert.Equal(t, batchTimeout, p.writer.BatchTimeout)
	assert.Less(t, p.writer.BatchTimeout, 100*time.Millisecond)
	assert.Equal(t, publishTimeout, p.writer.WriteTimeout)
	assert.Equal(t, queueSize, cap(p.queue))
}

func TestProducer_PublishDoesNotWait(t *testing.T) {
	p := &Producer{queue: make(chan kafka.Message, 1), stop: make(chan struct{})}

	start := time.Now()
	require.NoError(t, p.PublishEvent(context.Background(), TopicProducts, "1", ProductEvent{Type: ProductCreated, ProductID: 1}))
	assert.ErrorIs(t, p.PublishEvent(context.Background(), TopicProducts, "2", ProductEvent{Type: ProductCreated, ProductID: 2}), ErrQueueFull)
	assert.Less(t, time.Since(start), time.Second)

	queued := <-p.queue
	assert.Equal(t, []byte("1"), queued.Key)
	assert.Equal(t, TopicProducts, queued.Topic)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.PublishEvent(context.Background(), TopicUsers, "3", UserEvent{}), ErrClosed)
}
