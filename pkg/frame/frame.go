// Package frame defines the generic frame model exchanged over a duplex
// connection. A Frame is one discrete unit of traffic, tagged by kind:
// text, binary, ping, pong or close. Per-backend adapters translate
// between their native frame types and this model.
package frame

// Kind identifies the frame type.
type Kind uint8

const (
	// KindText is a UTF-8 text data frame.
	KindText Kind = iota

	// KindBinary is a binary data frame.
	KindBinary

	// KindPing is a liveness probe control frame.
	KindPing

	// KindPong is the echo response to a ping.
	KindPong

	// KindClose signals connection shutdown, optionally with a close code
	// and reason.
	KindClose
)

// String returns the frame kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "TEXT"
	case KindBinary:
		return "BINARY"
	case KindPing:
		return "PING"
	case KindPong:
		return "PONG"
	case KindClose:
		return "CLOSE"
	default:
		return "UNKNOWN"
	}
}

// CloseFrame carries the optional payload of a close frame.
type CloseFrame struct {
	Code   uint16
	Reason string
}

// Frame is one unit of duplex traffic. Data holds the payload for text,
// binary, ping and pong frames. Status is set only for close frames and
// may be nil even then (a close without a status payload).
type Frame struct {
	Kind   Kind
	Data   []byte
	Status *CloseFrame
}

// Text creates a text frame from a UTF-8 string.
func Text(s string) Frame {
	return Frame{Kind: KindText, Data: []byte(s)}
}

// Binary creates a binary frame.
func Binary(data []byte) Frame {
	return Frame{Kind: KindBinary, Data: data}
}

// Ping creates a ping frame with the given payload.
func Ping(data []byte) Frame {
	return Frame{Kind: KindPing, Data: data}
}

// Pong creates a pong frame with the given payload.
func Pong(data []byte) Frame {
	return Frame{Kind: KindPong, Data: data}
}

// Close creates a close frame with a status code and reason.
func Close(code uint16, reason string) Frame {
	return Frame{Kind: KindClose, Status: &CloseFrame{Code: code, Reason: reason}}
}

// CloseEmpty creates a close frame without a status payload.
func CloseEmpty() Frame {
	return Frame{Kind: KindClose}
}

// Bytes returns the frame payload. Close frames have no byte payload and
// return nil.
func (f Frame) Bytes() []byte {
	if f.Kind == KindClose {
		return nil
	}
	return f.Data
}

// Text returns the payload interpreted as a string.
func (f Frame) Text() string {
	return string(f.Bytes())
}

// IsData reports whether the frame carries application data (text or
// binary), as opposed to a control frame.
func (f Frame) IsData() bool {
	return f.Kind == KindText || f.Kind == KindBinary
}

// IsControl reports whether the frame is a control frame (ping, pong or
// close).
func (f Frame) IsControl() bool {
	return !f.IsData()
}
