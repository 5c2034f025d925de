package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/interfaces"
	"github.com/SundayYogurt/scholarship_service/internal/metrics"
)

// eventPublisher hands domain events to the broker after the store write
// has committed. Failures are logged and never fail the request.
type eventPublisher struct {
	producer interfaces.ProducerHandler
	logger   *slog.Logger
}

func newEventPublisher(producer interfaces.ProducerHandler, logger *slog.Logger) eventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return eventPublisher{producer: producer, logger: logger}
}

func (p eventPublisher) publish(ctx context.Context, eventType, key string, data any) {
	if p.producer == nil {
		return
	}

	payload, err := json.Marshal(domain.Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		p.logger.Error("encode event", slog.String("type", eventType), slog.Any("error", err))
		return
	}

	// the request may already be finishing
	ctx = context.WithoutCancel(ctx)
	err = p.producer.PublishMessage(ctx, []byte(key), payload)
	metrics.RecordEvent(eventType, err)
	if err != nil {
		p.logger.Warn("publish event failed",
			slog.String("type", eventType),
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
