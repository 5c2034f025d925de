package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/interfaces"
)

var _ interfaces.ConsumerHandler = (*ReceiptHandler)(nil)

type ReceiptHandler struct {
	mail   *MailService
	logger *slog.Logger
}

func NewReceiptHandler(ms *MailService, logger *slog.Logger) *ReceiptHandler {
	return &ReceiptHandler{mail: ms, logger: logger}
}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleMessage mails a receipt for payment.recorded events and skips the rest.
func (h *ReceiptHandler) HandleMessage(ctx context.Context, key, value []byte) error {
	var ev envelope
	if err := json.Unmarshal(value, &ev); err != nil {
		return fmt.Errorf("invalid event payload: %w", err)
	}
	if ev.Type != domain.EventPaymentRecorded {
		h.logger.Debug("event ignored", slog.String("type", ev.Type))
		return nil
	}

	var p domain.PaymentRecordedEvent
	if err := json.Unmarshal(ev.Data, &p); err != nil {
		return fmt.Errorf("invalid payment event: %w", err)
	}
	return h.mail.SendReceipt(ctx, p)
}
