// Package codec provides the payload encoding layer: pluggable codecs
// that translate typed application payloads to bytes and back, and the
// frame codec that wraps those bytes into data frames of the kind each
// payload codec declares.
package codec

import (
	"fmt"

	"github.com/pulsesock/pulsesock-go/pkg/frame"
	"github.com/pulsesock/pulsesock-go/pkg/wserr"
)

// Codec encodes typed application payloads for transmission and decodes
// received bytes back into payloads. The payload format is assumed to be
// symmetrical for both directions.
//
// FrameKind declares whether encoded payloads ride on text or binary
// frames; the frame codec enforces it on both paths.
type Codec[P any] interface {
	// FrameKind returns the data frame kind this codec transmits on,
	// either frame.KindText or frame.KindBinary.
	FrameKind() frame.Kind

	// Encode serializes the payload. Failures are reported as encoding
	// errors.
	Encode(payload P) ([]byte, error)

	// Decode deserializes a received payload. Failures are reported as
	// decoding errors.
	Decode(data []byte) (P, error)
}

// Wrap packs an encoded payload into a data frame of the given kind.
func Wrap(kind frame.Kind, data []byte) frame.Frame {
	return frame.Frame{Kind: kind, Data: data}
}

// Unwrap extracts the payload bytes from a data frame, enforcing that the
// frame kind matches what the active codec expects. A mismatch (e.g. a
// text frame arriving for a binary codec) fails with an invalid payload
// error rather than being silently accepted.
func Unwrap(kind frame.Kind, f frame.Frame) ([]byte, error) {
	if f.Kind != kind {
		return nil, wserr.InvalidPayload(fmt.Errorf("expected %s frame, got %s", kind, f.Kind))
	}
	return f.Data, nil
}
