package codec

import "github.com/pulsesock/pulsesock-go/pkg/frame"

// Binary transmits raw bytes as-is on binary frames. Encode and decode
// are identity operations and never fail.
type Binary struct{}

// FrameKind returns frame.KindBinary.
func (Binary) FrameKind() frame.Kind {
	return frame.KindBinary
}

// Encode returns the payload unchanged.
func (Binary) Encode(payload []byte) ([]byte, error) {
	return payload, nil
}

// Decode returns the data unchanged.
func (Binary) Decode(data []byte) ([]byte, error) {
	return data, nil
}

// Compile-time interface satisfaction check.
var _ Codec[[]byte] = Binary{}
