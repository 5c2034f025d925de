package queue

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/interfaces"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type ConsumerConfig struct {
	Broker   string
	Topic    string
	GroupID  string
	Username string
	Password string
}

const (
	readRetryMin = 500 * time.Millisecond
	readRetryMax = 30 * time.Second
)

// MessageReader is the part of *kafka.Reader the consumer loop needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type KafkaConsumer struct {
	Reader      MessageReader
	Handler     interfaces.ConsumerHandler
	ServiceName string
	logger      *slog.Logger

	retryMin time.Duration
	retryMax time.Duration
}

func NewKafkaConsumer(cfg ConsumerConfig, handler interfaces.ConsumerHandler, logger *slog.Logger) *KafkaConsumer {
	dialer := &kafka.Dialer{Timeout: 10 * time.Second, DualStack: true}
	if cfg.Username != "" {
		dialer.SASLMechanism = plain.Mechanism{Username: cfg.Username, Password: cfg.Password}
		dialer.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.Broker},
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		Dialer:   dialer,
		MinBytes: 10e3, //10KB
		MaxBytes: 10e6, //10MB
	})

	return &KafkaConsumer{
		Reader:      reader,
		Handler:     handler,
		ServiceName: "receipt-mailer",
		logger:      logger,
		retryMin:    readRetryMin,
		retryMax:    readRetryMax,
	}
}

// Listen blocks until ctx is cancelled. Handler failures are logged and the
// message is committed anyway; receipts are best effort. Read failures back
// off exponentially up to retryMax.
func (kc *KafkaConsumer) Listen(ctx context.Context) error {
	defer kc.Reader.Close()

	backoff := kc.retryMin
	for {
		msg, err := kc.Reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			kc.logger.Error("reading message", slog.Any("error", err), slog.Duration("retry_in", backoff))
			if !sleepCtx(ctx, backoff) {
				return nil
			}
			backoff = min(backoff*2, kc.retryMax)
			continue
		}
		backoff = kc.retryMin

		kc.logger.Debug("received message",
			slog.String("service", kc.ServiceName),
			slog.String("key", string(msg.Key)),
			slog.Int64("offset", msg.Offset),
		)

		if err := kc.Handler.HandleMessage(ctx, msg.Key, msg.Value); err != nil {
			kc.logger.Error("processing message", slog.String("key", string(msg.Key)), slog.Any("error", err))
		}
	}
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
