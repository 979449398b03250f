package transport

import (
	"encoding/binary"
	"time"

	"github.com/pulsesock/pulsesock-go/pkg/frame"
)

// Heartbeat constants.
const (
	// DefaultHeartbeatInterval is the default period between pings.
	DefaultHeartbeatInterval = 5 * time.Second

	// DefaultIdleTimeout is the default maximum silence tolerated before
	// the connection is presumed dead. Should always exceed the
	// heartbeat interval.
	DefaultIdleTimeout = 15 * time.Second

	// timestampSize is the length of a heartbeat payload: an 8-byte
	// big-endian unsigned millisecond Unix timestamp.
	timestampSize = 8
)

// pingFrame builds a heartbeat ping carrying the current timestamp.
func pingFrame() frame.Frame {
	return frame.Ping(encodeTimestamp(nowMillis()))
}

func encodeTimestamp(ts uint64) []byte {
	buf := make([]byte, timestampSize)
	binary.BigEndian.PutUint64(buf, ts)
	return buf
}

// decodeTimestamp reads a heartbeat payload. A payload of the wrong
// length decodes to 0 rather than failing.
func decodeTimestamp(data []byte) uint64 {
	if len(data) != timestampSize {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

// pongLatency computes the round-trip time from an echoed heartbeat
// payload. Timestamps from the future clamp to zero.
func pongLatency(data []byte) time.Duration {
	now := nowMillis()
	ts := decodeTimestamp(data)
	if ts > now {
		return 0
	}
	return time.Duration(now-ts) * time.Millisecond
}

func nowMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}
