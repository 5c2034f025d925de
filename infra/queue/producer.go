package queue

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	publishTimeout = 5 * time.Second
	publishBuffer  = 256
)

// ErrPublishQueueFull is returned when events arrive faster than the broker
// accepts them.
var ErrPublishQueueFull = errors.New("kafka publish queue full")

type ProducerConfig struct {
	Broker   string
	Topic    string
	Username string
	Password string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer queues messages and writes them from one background goroutine,
// so callers never wait on the broker.
type Producer struct {
	writer messageWriter
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan kafka.Message
	done   chan struct{}
}

// NewProducer returns nil when no broker is configured; a nil producer skips
// every publish.
func NewProducer(cfg ProducerConfig, logger *slog.Logger) *Producer {
	if cfg.Broker == "" || cfg.Topic == "" {
		return nil
	}

	transport := &kafka.Transport{}
	if cfg.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}
		transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return newProducer(&kafka.Writer{
		Addr:         kafka.TCP(cfg.Broker),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Transport:    transport,
		WriteTimeout: 10 * time.Second,
	}, logger, publishBuffer)
}

func newProducer(w messageWriter, logger *slog.Logger, buffer int) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Producer{
		writer: w,
		logger: logger,
		queue:  make(chan kafka.Message, buffer),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Producer) run() {
	defer close(p.done)
	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err := p.writer.WriteMessages(ctx, msg)
		cancel()
		if err != nil {
			p.logger.Warn("kafka write failed",
				slog.String("key", string(msg.Key)),
				slog.Any("error", err),
			)
		}
	}
}

// PublishMessage enqueues the message and returns at once. ctx is not used
// for the write itself, which outlives the request.
func (p *Producer) PublishMessage(_ context.Context, key, value []byte) error {
	if p == nil || p.writer == nil {
		slog.Debug("kafka producer not configured, skip publish", slog.String("key", string(key)))
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return errors.New("kafka producer closed")
	}

	select {
	case p.queue <- kafka.Message{Key: key, Value: value, Time: time.Now()}:
		return nil
	default:
		return ErrPublishQueueFull
	}
}

// Close flushes queued messages, then closes the writer.
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	<-p.done
	return p.writer.Close()
}
