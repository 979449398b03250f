package gorillaws

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pulsesock/pulsesock-go/pkg/frame"
	"github.com/pulsesock/pulsesock-go/pkg/transport"
)

const (
	writeWait  = 10 * time.Second
	maxMsgSize = 2 << 20 // 2MB

	readBufferSize = 16
)

// Adapter wraps a *websocket.Conn. A dedicated pump goroutine runs
// ReadMessage and feeds a frame channel; control frames intercepted by
// the gorilla handlers go onto the same channel from inside the pump,
// so they surface to ReadFrame even while a data read is still blocked.
// gorilla permits one concurrent reader and one concurrent writer;
// control-frame writes issued from the pump go through WriteControl,
// which gorilla allows concurrently with a writer.
type Adapter struct {
	conn *websocket.Conn

	writeMu sync.Mutex

	// frames carries data and control frames in arrival order. The pump
	// closes it after storing readErr.
	frames  chan frame.Frame
	readErr error

	closed    chan struct{}
	closeOnce sync.Once
}

var _ transport.Adapter = (*Adapter)(nil)

// New wraps an established WebSocket connection and starts its read
// pump. The caller must not use the connection afterwards.
func New(conn *websocket.Conn) *Adapter {
	a := &Adapter{
		conn:   conn,
		frames: make(chan frame.Frame, readBufferSize),
		closed: make(chan struct{}),
	}
	conn.SetReadLimit(maxMsgSize)

	conn.SetPingHandler(func(data string) error {
		if err := a.push(frame.Ping([]byte(data))); err != nil {
			return err
		}
		err := conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
		if errors.Is(err, websocket.ErrCloseSent) || errors.Is(err, net.ErrClosed) {
			return nil
		}
		return err
	})
	conn.SetPongHandler(func(data string) error {
		return a.push(frame.Pong([]byte(data)))
	})
	conn.SetCloseHandler(func(code int, text string) error {
		if err := a.push(frame.Close(uint16(code), text)); err != nil {
			return err
		}
		// Echo the close frame, as the default handler would.
		msg := websocket.FormatCloseMessage(code, "")
		err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		if errors.Is(err, websocket.ErrCloseSent) || errors.Is(err, net.ErrClosed) {
			return nil
		}
		return err
	})

	go a.readPump()

	return a
}

// push forwards a frame to the consumer, giving up when the adapter is
// closed so a full channel cannot wedge the pump.
func (a *Adapter) push(f frame.Frame) error {
	select {
	case a.frames <- f:
		return nil
	case <-a.closed:
		return net.ErrClosed
	}
}

// readPump owns ReadMessage. Control frames reach the channel through
// the handlers during the ReadMessage call; data frames are forwarded
// here. On a read error the pump records it and closes the channel, so
// ReadFrame drains any frames queued before the failure first.
func (a *Adapter) readPump() {
	defer close(a.frames)

	for {
		mt, data, err := a.conn.ReadMessage()
		if err != nil {
			a.readErr = mapReadError(err)
			return
		}

		switch mt {
		case websocket.TextMessage:
			if a.push(frame.Frame{Kind: frame.KindText, Data: data}) != nil {
				a.readErr = net.ErrClosed
				return
			}
		case websocket.BinaryMessage:
			if a.push(frame.Frame{Kind: frame.KindBinary, Data: data}) != nil {
				a.readErr = net.ErrClosed
				return
			}
		}
		// Unknown message type, skip.
	}
}

// ReadFrame returns the next frame from the connection. Control frames
// are delivered in arrival order relative to data frames. After the
// peer's close frame has been delivered, ReadFrame returns io.EOF.
func (a *Adapter) ReadFrame() (frame.Frame, error) {
	f, ok := <-a.frames
	if !ok {
		return frame.Frame{}, a.readErr
	}
	return f, nil
}

// mapReadError normalizes gorilla's end-of-stream errors. A normal or
// going-away closure is a clean end.
func mapReadError(err error) error {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return io.EOF
	}
	return err
}

// WriteFrame transmits a frame. Data frames go through the message
// writer, control frames through WriteControl.
func (a *Adapter) WriteFrame(f frame.Frame) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	deadline := time.Now().Add(writeWait)
	switch f.Kind {
	case frame.KindText:
		a.conn.SetWriteDeadline(deadline)
		return a.conn.WriteMessage(websocket.TextMessage, f.Data)
	case frame.KindBinary:
		a.conn.SetWriteDeadline(deadline)
		return a.conn.WriteMessage(websocket.BinaryMessage, f.Data)
	case frame.KindPing:
		return a.conn.WriteControl(websocket.PingMessage, f.Data, deadline)
	case frame.KindPong:
		return a.conn.WriteControl(websocket.PongMessage, f.Data, deadline)
	case frame.KindClose:
		var msg []byte
		if f.Status != nil {
			msg = websocket.FormatCloseMessage(int(f.Status.Code), f.Status.Reason)
		} else {
			msg = websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		}
		return a.conn.WriteControl(websocket.CloseMessage, msg, deadline)
	default:
		return nil
	}
}

// Close tears down the underlying connection, unblocking the read pump
// and thereby any pending ReadFrame.
func (a *Adapter) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.closed)
		err = a.conn.Close()
	})
	return err
}
