package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"storeadmin-be/internal/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	ErrQueueFull      = errors.New("event queue full")
	ErrProducerClosed = errors.New("producer closed")
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer buffers messages in memory and writes them to Kafka from a single
// goroutine, so Publish never waits on the broker.
type Producer struct {
	w     messageWriter
	inbox chan kafka.Message
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewProducer(brokers []string, topic string, buf int) *Producer {
	return newProducer(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        true,
	}, buf)
}

func newProducer(w messageWriter, buf int) *Producer {
	return &Producer{
		w:     w,
		inbox: make(chan kafka.Message, buf),
		done:  make(chan struct{}),
	}
}

func (p *Producer) Start() {
	go p.loop()
}

func (p *Producer) loop() {
	defer close(p.done)

	for m := range p.inbox {
		if err := p.w.WriteMessages(context.Background(), m); err != nil {
			logger.L().Error("kafka: failed to write message",
				zap.ByteString("key", m.Key),
				zap.Error(err),
			)
		}
	}

	if err := p.w.Close(); err != nil {
		logger.L().Warn("kafka: failed to close writer", zap.Error(err))
	}
}

// Publish queues a message. It fails fast with ErrQueueFull rather than
// blocking the caller.
func (p *Producer) Publish(key, value []byte, headers ...kafka.Header) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrProducerClosed
	}

	select {
	case p.inbox <- kafka.Message{Key: key, Value: value, Time: time.Now(), Headers: headers}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting messages. Queued messages are still flushed; use
// WaitClosed to wait for that.
func (p *Producer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	close(p.inbox)
}

func (p *Producer) WaitClosed() { <-p.done }
