package mail

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
)

type recordingSender struct {
	to   []string
	msgs []string
}

func (r *recordingSender) Send(_ context.Context, to string, msg []byte) error {
	r.to = append(r.to, to)
	r.msgs = append(r.msgs, string(msg))
	return nil
}

func newTestHandler() (*ReceiptHandler, *recordingSender) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rs := &recordingSender{}
	ms := NewMailService(rs, "noreply@example.com", "Scholarships", logger)
	return NewReceiptHandler(ms, logger), rs
}

func event(t *testing.T, typ string, data any) []byte {
	t.Helper()
	b, err := json.Marshal(domain.Event{Type: typ, OccurredAt: time.Now(), Data: data})
	require.NoError(t, err)
	return b
}

func TestReceiptHandler_SendsForPaymentRecorded(t *testing.T) {
	h, rs := newTestHandler()

	msg := event(t, domain.EventPaymentRecorded, domain.PaymentRecordedEvent{
		PaymentID:     "p1",
		Email:         "alice@example.com",
		TransactionID: "pi_123",
		Price:         19.99,
		SubmitIDs:     []string{"a", "b"},
	})

	require.NoError(t, h.HandleMessage(context.Background(), nil, msg))
	require.Len(t, rs.to, 1)
	assert.Equal(t, "alice@example.com", rs.to[0])
	assert.Contains(t, rs.msgs[0], "From: Scholarships <noreply@example.com>")
	assert.Contains(t, rs.msgs[0], "pi_123")
	assert.Contains(t, rs.msgs[0], "19.99")
}

func TestReceiptHandler_IgnoresOtherEvents(t *testing.T) {
	h, rs := newTestHandler()

	msg := event(t, domain.EventUserCreated, map[string]string{"email": "bob@example.com"})

	require.NoError(t, h.HandleMessage(context.Background(), nil, msg))
	assert.Empty(t, rs.to)
}

func TestReceiptHandler_RejectsGarbage(t *testing.T) {
	h, _ := newTestHandler()
	assert.Error(t, h.HandleMessage(context.Background(), nil, []byte("not json")))
}

func TestSendReceipt_RequiresRecipient(t *testing.T) {
	h, rs := newTestHandler()
	err := h.mail.SendReceipt(context.Background(), domain.PaymentRecordedEvent{PaymentID: "p1"})
	assert.Error(t, err)
	assert.Empty(t, rs.to)
}

func TestRenderReceipt(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)
	out, err := RenderReceipt(domain.PaymentRecordedEvent{
		PaymentID: "p9", TransactionID: "<tx>", Price: 5, SubmitIDs: []string{"x"},
	}, at)
	require.NoError(t, err)
	assert.Contains(t, out, "5.00")
	assert.Contains(t, out, "2026-01-02 03:04 UTC")
	assert.Contains(t, out, "&lt;tx&gt;")
}
