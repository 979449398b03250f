package transport

import "github.com/pulsesock/pulsesock-go/pkg/frame"

// Adapter exposes a native duplex connection as a send/receive primitive
// of generic frames. Per-backend implementations perform a stateless 1:1
// translation between the connection library's native frame type and
// frame.Frame.
//
// The Driver is the sole caller: ReadFrame is called from one goroutine
// and WriteFrame from another, so implementations must tolerate one
// concurrent reader and one concurrent writer. Close must unblock any
// in-flight ReadFrame or WriteFrame call.
type Adapter interface {
	// ReadFrame blocks until the next frame arrives. It returns an error
	// when the native stream ends or fails; after an error no further
	// frames are delivered.
	ReadFrame() (frame.Frame, error)

	// WriteFrame transmits a frame on the native connection.
	WriteFrame(f frame.Frame) error

	// Close tears down the native connection, unblocking pending reads
	// and writes. Close is idempotent.
	Close() error
}
