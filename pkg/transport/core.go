package transport

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/pulsesock/pulsesock-go/pkg/frame"
	"github.com/pulsesock/pulsesock-go/pkg/log"
	"github.com/pulsesock/pulsesock-go/pkg/wserr"
)

// Core is the queue-backed duplex object exposed upward by the Driver.
// It enforces the idle timeout and filters heartbeat traffic out of the
// consumer-visible stream.
//
// Receive must be called from a single goroutine; Send may run
// concurrently with Receive.
type Core struct {
	driver      *Driver
	idleTimeout time.Duration

	mu       sync.Mutex
	deadline time.Time
	expired  bool
	eof      bool
}

// NewCore wraps a driver with idle-timeout enforcement. A non-positive
// timeout falls back to DefaultIdleTimeout.
func NewCore(driver *Driver, idleTimeout time.Duration) *Core {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Core{
		driver:      driver,
		idleTimeout: idleTimeout,
		deadline:    time.Now().Add(idleTimeout),
	}
}

// ConnectionID returns the underlying driver's connection UUID.
func (c *Core) ConnectionID() string {
	return c.driver.ConnectionID()
}

// Receive returns the next data frame. Heartbeat frames are consumed
// silently, though any received frame counts as liveness and resets the
// idle deadline. A close frame, the end of the native stream or idle
// expiry all latch a terminal state and return io.EOF.
func (c *Core) Receive(ctx context.Context) (frame.Frame, error) {
	c.mu.Lock()
	if c.eof {
		c.mu.Unlock()
		return frame.Frame{}, io.EOF
	}
	deadline := c.deadline
	c.mu.Unlock()

	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	for {
		// Expiry wins over frames already buffered in the queue; a frame
		// that arrived before the deadline but was not consumed in time
		// does not revive the connection.
		if !time.Now().Before(deadline) {
			c.expire()
			return frame.Frame{}, io.EOF
		}

		select {
		case <-ctx.Done():
			return frame.Frame{}, ctx.Err()

		case <-timer.C:
			c.expire()
			return frame.Frame{}, io.EOF

		case f, ok := <-c.driver.inCh:
			if !ok {
				c.end()
				return frame.Frame{}, io.EOF
			}

			c.touch()
			deadline = time.Now().Add(c.idleTimeout)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(c.idleTimeout)

			switch f.Kind {
			case frame.KindText, frame.KindBinary:
				return f, nil
			case frame.KindClose:
				c.end()
				return frame.Frame{}, io.EOF
			default:
				// Ping/pong are liveness bookkeeping only, invisible to
				// the consumer.
			}
		}
	}
}

// Send forwards a frame to the outbound queue, blocking while the queue
// is at capacity. It fails with a closed error after idle expiry, after
// Close, or once the driver's outbound half has gone away.
func (c *Core) Send(ctx context.Context, f frame.Frame) error {
	if c.expiredNow() || c.driver.stop.Fired() {
		return wserr.ErrClosed
	}

	select {
	case c.driver.outCh <- f:
		return nil
	case <-c.driver.stop.Done():
		return wserr.ErrClosed
	case <-c.driver.outDone.Done():
		return wserr.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts the transport down. Idempotent.
func (c *Core) Close() {
	c.driver.Close()
}

// Done returns a channel closed once the driver has fully stopped.
func (c *Core) Done() <-chan struct{} {
	return c.driver.Done()
}

// touch resets the idle deadline; any inbound traffic counts.
func (c *Core) touch() {
	c.mu.Lock()
	c.deadline = time.Now().Add(c.idleTimeout)
	c.mu.Unlock()
}

// expire latches the terminal idle-expired state. Expiry stops
// consumption but does not tear down the driver; that happens through
// the driver's own triggers.
func (c *Core) expire() {
	c.mu.Lock()
	already := c.expired
	c.expired = true
	c.eof = true
	c.mu.Unlock()

	if !already {
		c.driver.logger.Log(log.NewStateEvent(c.driver.connID, stateRunning, stateExpired, "idle timeout exceeded"))
	}
}

// end latches the terminal end-of-stream state.
func (c *Core) end() {
	c.mu.Lock()
	c.eof = true
	c.mu.Unlock()
}

// expiredNow reports whether the idle deadline has passed, latching the
// expired state if so.
func (c *Core) expiredNow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.expired {
		return true
	}
	if time.Now().After(c.deadline) {
		c.expired = true
		c.eof = true
		return true
	}
	return false
}
