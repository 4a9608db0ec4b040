package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TopicProducts = "product_events"
	TopicUsers    = "user_events"
)

const (
	ProductCreated = "product_created"
	ProductUpdated = "product_updated"
	ProductDeleted = "product_deleted"
	UserRegistered = "user_registered"
	UserLoggedIn   = "user_logged_in"
)

const (
	publishTimeout = 5 * time.Second
	batchTimeout   = 10 * time.Millisecond
	queueSize      = 256
)

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
	Close() error
}

type ProductEvent struct {
	Type      string `json:"type"`
	ProductID uint   `json:"productID"`
	Name      string `json:"name,omitempty"`
	UserID    uint   `json:"userID,omitempty"`
}

type UserEvent struct {
	Type   string `json:"type"`
	UserID uint   `json:"userID"`
	Email  string `json:"email"`
}

var (
	ErrQueueFull = errors.New("kafka: event queue full")
	ErrClosed    = errors.New("kafka: producer closed")
)

// Producer hands events to a background writer. PublishEvent never waits on
// the brokers; delivery failures are logged by the writer goroutine.
type Producer struct {
	writer *kafka.Writer
	queue  chan kafka.Message
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

func NewProducer(brokers []string) *Producer {
	p := &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchSize:              1,
			BatchTimeout:           batchTimeout,
			WriteTimeout:           publishTimeout,
		},
		queue: make(chan kafka.Message, queueSize),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Producer) PublishEvent(_ context.Context, topic, key string, event any) error {
	msg, err := encode(topic, key, event)
	if err != nil {
		return err
	}

	select {
	case <-p.stop:
		return ErrClosed
	default:
	}

	select {
	case p.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close flushes what is queued, bounded by publishTimeout, and closes the writer.
func (p *Producer) Close() error {
	p.once.Do(func() { close(p.stop) })
	if p.done != nil {
		<-p.done
	}
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *Producer) run() {
	defer close(p.done)
	for {
		select {
		case msg := <-p.queue:
			p.write(context.Background(), msg)
		case <-p.stop:
			p.drain()
			return
		}
	}
}

func (p *Producer) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	for {
		select {
		case msg := <-p.queue:
			p.write(ctx, msg)
		default:
			return
		}
	}
}

func (p *Producer) write(ctx context.Context, msg kafka.Message) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Error("event_delivery_failed", "topic", msg.Topic, "key", string(msg.Key), "error", err)
	}
}

func encode(topic, key string, event any) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}
	return kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now().UTC(),
	}, nil
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) PublishEvent(context.Context, string, string, any) error { return nil }
func (Nop) Close() error                                          { return nil }

// New returns a Kafka producer, or Nop when brokers is empty.
func New(brokers []string) Publisher {
	if len(brokers) == 0 {
		return Nop{}
	}
	return NewProducer(brokers)
}
