package transport

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pulsesock/pulsesock-go/pkg/frame"
	"github.com/pulsesock/pulsesock-go/pkg/log"
)

// Queue constants.
const (
	// DefaultChannelCapacity is the default bound of the inbound and
	// outbound queues.
	DefaultChannelCapacity = 64
)

// Driver state names used in lifecycle log events.
const (
	stateStarting = "STARTING"
	stateRunning  = "RUNNING"
	stateStopped  = "STOPPED"
	stateExpired  = "EXPIRED"
)

// Driver bridges a native duplex connection to two bounded queues,
// injecting heartbeat pings into the outbound direction and interpreting
// heartbeat pongs on the inbound one. It runs as two concurrently
// progressing halves which are joined, not raced, so each direction
// cleans up independently.
//
// The Driver is the sole owner of the Adapter and lives until either the
// native receive stream ends or Close is called.
type Driver struct {
	adapter   Adapter
	observer  Observer
	logger    log.Logger
	connID    string
	heartbeat time.Duration

	outCh chan frame.Frame // consumer -> wire
	inCh  chan frame.Frame // wire -> consumer

	stop     *Signal // external: facade closed or released
	internal *Signal // inbound half ended
	outDone  *Signal // outbound half ended
	done     *Signal // both halves joined
}

// Spawn starts a Driver around the given adapter. Nil observer and
// logger default to no-ops; non-positive capacity and interval fall back
// to the package defaults.
func Spawn(adapter Adapter, observer Observer, logger log.Logger, capacity int, heartbeatInterval time.Duration) *Driver {
	if observer == nil {
		observer = NoopObserver{}
	}
	if logger == nil {
		logger = log.NoopLogger{}
	}
	if capacity <= 0 {
		capacity = DefaultChannelCapacity
	}
	if heartbeatInterval <= 0 {
		heartbeatInterval = DefaultHeartbeatInterval
	}

	d := &Driver{
		adapter:   adapter,
		observer:  observer,
		logger:    logger,
		connID:    uuid.NewString(),
		heartbeat: heartbeatInterval,
		outCh:     make(chan frame.Frame, capacity),
		inCh:      make(chan frame.Frame, capacity),
		stop:      NewSignal(),
		internal:  NewSignal(),
		outDone:   NewSignal(),
		done:      NewSignal(),
	}

	go d.run()

	return d
}

// ConnectionID returns the driver's connection UUID, shared by all log
// events it emits.
func (d *Driver) ConnectionID() string {
	return d.connID
}

// Close triggers immediate shutdown of both halves. No in-flight flush
// is guaranteed. Close is idempotent.
func (d *Driver) Close() {
	d.stop.Fire()
}

// Done returns a channel closed once both halves have finished and the
// native connection has been released.
func (d *Driver) Done() <-chan struct{} {
	return d.done.Done()
}

func (d *Driver) run() {
	d.logger.Log(log.NewStateEvent(d.connID, stateStarting, stateRunning, ""))

	// Closing the adapter is what unblocks in-flight reads and writes
	// when shutdown is requested before the stream ends on its own.
	go func() {
		select {
		case <-d.stop.Done():
		case <-d.done.Done():
		}
		d.adapter.Close()
	}()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		d.outboundLoop()
	}()
	go func() {
		defer wg.Done()
		d.inboundLoop()
	}()
	wg.Wait()

	d.done.Fire()
	d.logger.Log(log.NewStateEvent(d.connID, stateRunning, stateStopped, d.stopReason()))
}

func (d *Driver) stopReason() string {
	if d.stop.Fired() {
		return "shutdown requested"
	}
	return "stream ended"
}

// outboundLoop merges, in emission order, frames arriving on the
// outbound queue with frames produced by the heartbeat timer, and
// forwards each through the adapter. It ends on shutdown or on a write
// error.
func (d *Driver) outboundLoop() {
	defer d.outDone.Fire()

	// The heartbeat timer is re-armed only after a ping write completes,
	// so a tick missed under backpressure delays a full interval instead
	// of bursting.
	timer := time.NewTimer(d.heartbeat)
	defer timer.Stop()

	for {
		select {
		case <-d.stop.Done():
			return

		case <-d.internal.Done():
			// The inbound stream ended. The heartbeat has no other end
			// condition, so stop it here; keep draining user frames
			// until shutdown.
			timer.Stop()
			d.drainOutbound()
			return

		case f := <-d.outCh:
			if !d.writeFrame(f) {
				return
			}

		case <-timer.C:
			if !d.writeFrame(pingFrame()) {
				return
			}
			timer.Reset(d.heartbeat)
		}
	}
}

// drainOutbound keeps forwarding user frames after the inbound stream
// has ended, until shutdown or a write error.
func (d *Driver) drainOutbound() {
	for {
		select {
		case <-d.stop.Done():
			return
		case f := <-d.outCh:
			if !d.writeFrame(f) {
				return
			}
		}
	}
}

// writeFrame observes and transmits one frame. It reports false when the
// outbound half must end.
func (d *Driver) writeFrame(f frame.Frame) bool {
	d.observer.OnOutbound(f)

	if err := d.adapter.WriteFrame(f); err != nil {
		if !d.stop.Fired() {
			d.logger.Log(log.NewErrorEvent(d.connID, err))
		}
		return false
	}
	return true
}

// inboundLoop reads frames from the native stream, observes them,
// interprets heartbeat pongs and forwards everything into the inbound
// queue. Native I/O errors end the loop and surface to the consumer as
// stream end, never as a failure.
func (d *Driver) inboundLoop() {
	defer func() {
		d.internal.Fire()
		close(d.inCh)
	}()

	for {
		f, err := d.adapter.ReadFrame()
		if err != nil {
			if !errors.Is(err, io.EOF) && !d.stop.Fired() {
				d.logger.Log(log.NewErrorEvent(d.connID, err))
			}
			return
		}

		d.observer.OnInbound(f)

		if f.Kind == frame.KindPong {
			// The peer echoed a heartbeat payload; recover the embedded
			// timestamp and report the round trip.
			d.observer.OnLatency(pongLatency(f.Data))
		}

		select {
		case d.inCh <- f:
		case <-d.stop.Done():
			return
		}
	}
}
