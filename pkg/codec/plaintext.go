package codec

import (
	"errors"
	"unicode/utf8"

	"github.com/pulsesock/pulsesock-go/pkg/frame"
	"github.com/pulsesock/pulsesock-go/pkg/wserr"
)

// ErrInvalidUTF8 indicates a text payload that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("payload is not valid UTF-8")

// Plaintext transmits UTF-8 strings as-is on text frames. Decode fails on
// invalid UTF-8.
type Plaintext struct{}

// FrameKind returns frame.KindText.
func (Plaintext) FrameKind() frame.Kind {
	return frame.KindText
}

// Encode returns the string bytes unchanged.
func (Plaintext) Encode(payload string) ([]byte, error) {
	return []byte(payload), nil
}

// Decode validates and returns the payload as a string.
func (Plaintext) Decode(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", wserr.Decoding(ErrInvalidUTF8)
	}
	return string(data), nil
}

// Compile-time interface satisfaction check.
var _ Codec[string] = Plaintext{}
