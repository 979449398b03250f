package transport

import (
	"io"
	"net"

	"github.com/pulsesock/pulsesock-go/pkg/frame"
)

// PipeAdapter is one end of an in-memory adapter pair created by Pipe.
// It behaves like a real frame connection: reads block, writes apply
// backpressure at the configured buffer size and closing one end
// surfaces as stream end on the other.
type PipeAdapter struct {
	in        chan frame.Frame
	out       chan frame.Frame
	closed    *Signal
	peer      *PipeAdapter
	echoPings bool
}

// Pipe creates a synchronously connected pair of in-memory adapters,
// the frame analogue of net.Pipe. buffer bounds frames in flight per
// direction (0 means fully synchronous). With echoPings set, each end
// answers pings read off the wire with a verbatim pong, emulating the
// automatic echo real WebSocket stacks provide.
func Pipe(buffer int, echoPings bool) (*PipeAdapter, *PipeAdapter) {
	ab := make(chan frame.Frame, buffer)
	ba := make(chan frame.Frame, buffer)

	a := &PipeAdapter{in: ba, out: ab, closed: NewSignal(), echoPings: echoPings}
	b := &PipeAdapter{in: ab, out: ba, closed: NewSignal(), echoPings: echoPings}
	a.peer, b.peer = b, a

	return a, b
}

// ReadFrame blocks until a frame arrives or either end closes. Frames
// already in flight are drained before the close is reported.
func (p *PipeAdapter) ReadFrame() (frame.Frame, error) {
	select {
	case f := <-p.in:
		return p.deliver(f)
	default:
	}

	select {
	case f := <-p.in:
		return p.deliver(f)
	case <-p.closed.Done():
		return frame.Frame{}, net.ErrClosed
	case <-p.peer.closed.Done():
		select {
		case f := <-p.in:
			return p.deliver(f)
		default:
		}
		return frame.Frame{}, io.EOF
	}
}

func (p *PipeAdapter) deliver(f frame.Frame) (frame.Frame, error) {
	if p.echoPings && f.Kind == frame.KindPing {
		_ = p.WriteFrame(frame.Pong(append([]byte(nil), f.Data...)))
	}
	return f, nil
}

// WriteFrame blocks while the buffer is full. Writing on or to a closed
// end fails.
func (p *PipeAdapter) WriteFrame(f frame.Frame) error {
	select {
	case p.out <- f:
		return nil
	case <-p.closed.Done():
		return net.ErrClosed
	case <-p.peer.closed.Done():
		return io.ErrClosedPipe
	}
}

// Close releases both pending readers and writers on this end and
// surfaces as stream end on the peer. Idempotent.
func (p *PipeAdapter) Close() error {
	p.closed.Fire()
	return nil
}

// Compile-time interface satisfaction check.
var _ Adapter = (*PipeAdapter)(nil)
