package transport

import (
	"time"

	"github.com/pulsesock/pulsesock-go/pkg/frame"
	"github.com/pulsesock/pulsesock-go/pkg/log"
)

// Observer receives frame-level traffic notifications. Hooks are invoked
// synchronously on the hot path and must not block meaningfully.
//
// Embed NoopObserver to implement only the hooks of interest.
type Observer interface {
	// OnInbound is called for every frame received from the native
	// stream, before it is forwarded to the consumer.
	OnInbound(f frame.Frame)

	// OnOutbound is called for every frame forwarded to the native
	// connection, user and heartbeat frames alike, before transmission.
	OnOutbound(f frame.Frame)

	// OnLatency is called when a heartbeat round-trip time is measured.
	//
	// Latency measurement is based on ping-pong frames triggered on the
	// heartbeat interval, so reports roughly follow that interval.
	OnLatency(rtt time.Duration)

	// OnMalformed is called when a received frame fails frame or payload
	// decoding at the facade layer.
	OnMalformed(err error)
}

// NoopObserver ignores all notifications. Embed it to implement Observer
// partially.
type NoopObserver struct{}

// OnInbound ignores the frame.
func (NoopObserver) OnInbound(frame.Frame) {}

// OnOutbound ignores the frame.
func (NoopObserver) OnOutbound(frame.Frame) {}

// OnLatency ignores the measurement.
func (NoopObserver) OnLatency(time.Duration) {}

// OnMalformed ignores the error.
func (NoopObserver) OnMalformed(error) {}

// LogObserver forwards frame traffic and latency measurements to a
// log.Logger as structured events.
type LogObserver struct {
	logger log.Logger
	connID string
}

// NewLogObserver creates an observer that logs traffic under the given
// connection ID.
func NewLogObserver(logger log.Logger, connID string) *LogObserver {
	return &LogObserver{logger: logger, connID: connID}
}

// OnInbound logs the received frame.
func (o *LogObserver) OnInbound(f frame.Frame) {
	o.logger.Log(log.NewFrameEvent(o.connID, log.DirectionIn, f))
}

// OnOutbound logs the transmitted frame.
func (o *LogObserver) OnOutbound(f frame.Frame) {
	o.logger.Log(log.NewFrameEvent(o.connID, log.DirectionOut, f))
}

// OnLatency logs the round-trip measurement.
func (o *LogObserver) OnLatency(rtt time.Duration) {
	o.logger.Log(log.NewLatencyEvent(o.connID, rtt))
}

// OnMalformed logs the decode failure.
func (o *LogObserver) OnMalformed(err error) {
	o.logger.Log(log.NewErrorEvent(o.connID, err))
}

// Compile-time interface satisfaction checks.
var (
	_ Observer = NoopObserver{}
	_ Observer = (*LogObserver)(nil)
)
