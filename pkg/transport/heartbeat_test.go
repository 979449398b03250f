package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pulsesock/pulsesock-go/pkg/frame"
)

func TestTimestampRoundTrip(t *testing.T) {
	ts := uint64(1700000000123)
	assert.Equal(t, ts, decodeTimestamp(encodeTimestamp(ts)))
}

func TestDecodeTimestampWrongLength(t *testing.T) {
	// A malformed heartbeat payload decodes to 0 rather than failing.
	assert.Equal(t, uint64(0), decodeTimestamp(nil))
	assert.Equal(t, uint64(0), decodeTimestamp([]byte{1, 2, 3}))
	assert.Equal(t, uint64(0), decodeTimestamp(make([]byte, 9)))
}

func TestPingFrame(t *testing.T) {
	before := nowMillis()
	f := pingFrame()
	after := nowMillis()

	assert.Equal(t, frame.KindPing, f.Kind)
	assert.Len(t, f.Data, timestampSize)

	ts := decodeTimestamp(f.Data)
	assert.GreaterOrEqual(t, ts, before)
	assert.LessOrEqual(t, ts, after)
}

func TestPongLatency(t *testing.T) {
	payload := encodeTimestamp(nowMillis() - 250)
	rtt := pongLatency(payload)
	assert.GreaterOrEqual(t, rtt, 250*time.Millisecond)
	assert.Less(t, rtt, 5*time.Second)

	// Future timestamps and malformed payloads clamp sanely.
	assert.Equal(t, time.Duration(0), pongLatency(encodeTimestamp(nowMillis()+10000)))
	assert.Positive(t, pongLatency([]byte("bad"))) // decodes to 0, huge but non-panicking
}
