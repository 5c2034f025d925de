package queue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedReader struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	reads  atomic.Int32
	closed atomic.Bool
}

// ReadMessage hands out queued messages, then fails like an unreachable broker.
func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.reads.Add(1)
	if err := ctx.Err(); err != nil {
		return kafka.Message{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) > 0 {
		m := r.msgs[0]
		r.msgs = r.msgs[1:]
		return m, nil
	}
	return kafka.Message{}, errors.New("dial tcp 127.0.0.1:9092: connect: connection refused")
}

func (r *scriptedReader) Close() error {
	r.closed.Store(true)
	return nil
}

type countingHandler struct {
	keys []string
}

func (h *countingHandler) HandleMessage(_ context.Context, key, _ []byte) error {
	h.keys = append(h.keys, string(key))
	return nil
}

func newTestConsumer(r MessageReader, h *countingHandler, retryMin, retryMax time.Duration) *KafkaConsumer {
	return &KafkaConsumer{
		Reader:   r,
		Handler:  h,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		retryMin: retryMin,
		retryMax: retryMax,
	}
}

func TestListen_BacksOffOnReadErrors(t *testing.T) {
	r := &scriptedReader{}
	kc := newTestConsumer(r, &countingHandler{}, 20*time.Millisecond, 40*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	require.NoError(t, kc.Listen(ctx))
	assert.LessOrEqual(t, r.reads.Load(), int32(8))
	assert.True(t, r.closed.Load())
}

func TestListen_StopsDuringBackoff(t *testing.T) {
	r := &scriptedReader{}
	kc := newTestConsumer(r, &countingHandler{}, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- kc.Listen(ctx) }()

	require.Eventually(t, func() bool { return r.reads.Load() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Listen did not return after cancel")
	}
}

func TestListen_HandlesMessages(t *testing.T) {
	r := &scriptedReader{msgs: []kafka.Message{
		{Key: []byte("a")},
		{Key: []byte("b")},
	}}
	h := &countingHandler{}
	kc := newTestConsumer(r, h, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- kc.Listen(ctx) }()

	require.Eventually(t, func() bool { return r.reads.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, []string{"a", "b"}, h.keys)
}
