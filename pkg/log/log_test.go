package log

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsesock/pulsesock-go/pkg/frame"
)

// captureLogger records events for inspection.
type captureLogger struct {
	mu     sync.Mutex
	events []Event
}

func (c *captureLogger) Log(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureLogger) all() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func TestNoopLogger(t *testing.T) {
	// Must not panic as a zero value.
	var l NoopLogger
	l.Log(NewErrorEvent("conn", errors.New("x")))
}

func TestEventConstructors(t *testing.T) {
	ev := NewFrameEvent("conn-1", DirectionOut, frame.Text("hello"))
	assert.Equal(t, CategoryFrame, ev.Category)
	assert.Equal(t, DirectionOut, ev.Direction)
	require.NotNil(t, ev.Frame)
	assert.Equal(t, frame.KindText, ev.Frame.Kind)
	assert.Equal(t, 5, ev.Frame.Size)
	assert.False(t, ev.Timestamp.IsZero())

	ev = NewStateEvent("conn-1", "RUNNING", "STOPPED", "stream ended")
	assert.Equal(t, CategoryState, ev.Category)
	require.NotNil(t, ev.StateChange)
	assert.Equal(t, "stream ended", ev.StateChange.Reason)

	ev = NewLatencyEvent("conn-1", 42*time.Millisecond)
	assert.Equal(t, CategoryLatency, ev.Category)
	assert.Equal(t, 42*time.Millisecond, ev.Latency)

	ev = NewErrorEvent("conn-1", errors.New("boom"))
	assert.Equal(t, CategoryError, ev.Category)
	require.NotNil(t, ev.Error)
	assert.Equal(t, "boom", ev.Error.Message)
}

func TestMultiLogger(t *testing.T) {
	a := &captureLogger{}
	b := &captureLogger{}

	m := NewMultiLogger(a, b)
	m.Log(NewLatencyEvent("conn-1", time.Millisecond))

	assert.Len(t, a.all(), 1)
	assert.Len(t, b.all(), 1)
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	adapter := NewSlogAdapter(logger)
	adapter.Log(NewFrameEvent("conn-1", DirectionIn, frame.Binary([]byte{1, 2, 3})))
	adapter.Log(NewLatencyEvent("conn-1", 5*time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "conn_id=conn-1")
	assert.Contains(t, out, "kind=BINARY")
	assert.Contains(t, out, "size=3")
	assert.Contains(t, out, "rtt=5ms")
}
